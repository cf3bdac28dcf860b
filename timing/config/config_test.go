package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/r10ksim/insts"
	"github.com/sarchlab/r10ksim/timing/config"
	"github.com/sarchlab/r10ksim/timing/pipeline"
)

var _ = Describe("CoreConfig", func() {
	Describe("Default Config", func() {
		It("should describe the reference core", func() {
			params, err := config.DefaultCoreConfig().Params()
			Expect(err).NotTo(HaveOccurred())
			Expect(params).To(Equal(pipeline.ReferenceParams()))
		})

		It("should validate", func() {
			Expect(config.DefaultCoreConfig().Validate()).To(Succeed())
		})
	})

	Describe("Validate", func() {
		var cfg *config.CoreConfig

		BeforeEach(func() {
			cfg = config.DefaultCoreConfig()
		})

		It("should reject a malformed register token", func() {
			cfg.ArchRegs = []string{"f0", "x9"}
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("arch_regs")))
		})

		It("should reject too few physical registers", func() {
			cfg.PhysRegs = len(cfg.ArchRegs)
			Expect(cfg.Validate()).To(MatchError(pipeline.ErrTooFewPhysRegs))
		})

		It("should reject an empty reorder buffer", func() {
			cfg.ROBEntries = 0
			Expect(cfg.Validate()).To(MatchError(pipeline.ErrInvalidParams))
		})

		It("should reject a core with no stations", func() {
			cfg.Stations = nil
			Expect(cfg.Validate()).To(MatchError(pipeline.ErrInvalidParams))
		})
	})

	Describe("Clone", func() {
		It("should create independent copy", func() {
			original := config.DefaultCoreConfig()
			clone := original.Clone()

			clone.PhysRegs = 32
			clone.ArchRegs[0] = "r9"
			clone.Stations[0].FU = 7

			Expect(original.PhysRegs).To(Equal(16))
			Expect(original.ArchRegs[0]).To(Equal("f0"))
			Expect(original.Stations[0].FU).To(Equal(0))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "core-config-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load JSON config", func() {
			original := config.DefaultCoreConfig()
			original.PhysRegs = 24
			original.ROBEntries = 12

			path := filepath.Join(tempDir, "core.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(original))
		})

		It("should save and load YAML config", func() {
			original := config.DefaultCoreConfig()
			original.Stations = append(original.Stations,
				config.StationConfig{FU: 3, Instance: 0})

			path := filepath.Join(tempDir, "core.yaml")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(original))
		})

		It("should keep defaults for missing fields", func() {
			path := filepath.Join(tempDir, "partial.yml")
			err := os.WriteFile(path, []byte("rob_entries: 4\n"), 0644)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.ROBEntries).To(Equal(4))
			Expect(loaded.PhysRegs).To(Equal(16))

			params, err := loaded.Params()
			Expect(err).NotTo(HaveOccurred())
			Expect(params.ArchRegs).To(Equal(insts.ReferenceArchRegs()))
		})

		It("should return error for non-existent file", func() {
			_, err := config.LoadConfig("/nonexistent/path/core.json")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = config.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
