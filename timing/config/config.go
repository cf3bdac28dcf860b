// Package config provides file-based configuration of the timing core.
//
// Configurations are JSON by default; files ending in .yaml or .yml are
// read and written as YAML.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/r10ksim/insts"
	"github.com/sarchlab/r10ksim/timing/pipeline"
)

// StationConfig describes one reservation station.
type StationConfig struct {
	// FU is the functional-unit class the station accepts.
	FU int `json:"fu" yaml:"fu"`

	// Instance is the functional unit of that class the station feeds.
	// Stations with the same FU and Instance share one execution port.
	Instance int `json:"instance" yaml:"instance"`
}

// CoreConfig holds the structural parameters of the out-of-order core.
type CoreConfig struct {
	// ArchRegs lists the architectural registers as trace tokens
	// ("f0", "r1", ...). Default: f0..f3, r1..r4.
	ArchRegs []string `json:"arch_regs" yaml:"arch_regs"`

	// PhysRegs is the size of the physical register file. It must exceed
	// the number of architectural registers. Default: 16.
	PhysRegs int `json:"phys_regs" yaml:"phys_regs"`

	// ROBEntries is the reorder buffer capacity. Default: 8.
	ROBEntries int `json:"rob_entries" yaml:"rob_entries"`

	// Stations lists the reservation stations in allocation order.
	// Default: fu0 x1, fu1 x2, fu2 x2.
	Stations []StationConfig `json:"stations" yaml:"stations"`
}

// DefaultCoreConfig returns the reference core configuration.
func DefaultCoreConfig() *CoreConfig {
	return &CoreConfig{
		ArchRegs:   []string{"f0", "f1", "f2", "f3", "r1", "r2", "r3", "r4"},
		PhysRegs:   16,
		ROBEntries: 8,
		Stations: []StationConfig{
			{FU: 0, Instance: 0},
			{FU: 1, Instance: 0},
			{FU: 1, Instance: 1},
			{FU: 2, Instance: 0},
			{FU: 2, Instance: 1},
		},
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads a CoreConfig from a JSON or YAML file. Fields missing
// from the file keep their default values.
func LoadConfig(path string) (*CoreConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read core config file: %w", err)
	}

	config := DefaultCoreConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse core config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a CoreConfig to a JSON or YAML file.
func (c *CoreConfig) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to serialize core config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write core config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration describes a core that can be built.
func (c *CoreConfig) Validate() error {
	_, err := c.Params()
	return err
}

// Params converts the configuration into engine parameters.
func (c *CoreConfig) Params() (pipeline.Params, error) {
	regs, err := insts.ParseRegs(c.ArchRegs)
	if err != nil {
		return pipeline.Params{}, fmt.Errorf("arch_regs: %w", err)
	}

	params := pipeline.Params{
		ArchRegs:   regs,
		PhysRegs:   c.PhysRegs,
		ROBEntries: c.ROBEntries,
		Stations:   make([]pipeline.StationDesc, len(c.Stations)),
	}
	for i, s := range c.Stations {
		params.Stations[i] = pipeline.StationDesc{FU: s.FU, Instance: s.Instance}
	}

	if err := params.Validate(); err != nil {
		return pipeline.Params{}, err
	}

	return params, nil
}

// Clone returns a deep copy of the CoreConfig.
func (c *CoreConfig) Clone() *CoreConfig {
	return &CoreConfig{
		ArchRegs:   append([]string(nil), c.ArchRegs...),
		PhysRegs:   c.PhysRegs,
		ROBEntries: c.ROBEntries,
		Stations:   append([]StationConfig(nil), c.Stations...),
	}
}
