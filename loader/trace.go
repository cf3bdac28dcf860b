// Package loader reads and writes instruction traces.
//
// A trace is a text file with one instruction per line:
//
//	<fu> <dest> <src1> <src2> <latency>
//
// Register fields are f<N>, r<N>, or X for none. Blank lines and lines
// starting with # are skipped. Lines that cannot be decoded are dropped.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/r10ksim/insts"
)

// Trace is a decoded instruction trace.
type Trace struct {
	// Insts holds the decoded instructions in program order.
	Insts []insts.Instruction

	// Dropped counts the lines that were not blank or comments but could
	// not be decoded.
	Dropped int
}

// Load reads a trace file.
func Load(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse decodes a trace. Only read errors are returned; malformed lines are
// counted in Trace.Dropped.
func Parse(r io.Reader) (*Trace, error) {
	trace := &Trace{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		inst, ok := parseLine(line)
		if !ok {
			trace.Dropped++
			continue
		}
		trace.Insts = append(trace.Insts, inst)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	return trace, nil
}

// parseLine decodes one record. Fields are split on single spaces so an
// empty register field means none; other whitespace layouts fall back to
// splitting on runs of whitespace.
func parseLine(line string) (insts.Instruction, bool) {
	fields := strings.Split(line, " ")
	if len(fields) != 5 {
		fields = strings.Fields(line)
	}
	if len(fields) != 5 {
		return insts.Instruction{}, false
	}

	fu, err := strconv.Atoi(fields[0])
	if err != nil || fu < 0 {
		return insts.Instruction{}, false
	}

	latency, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return insts.Instruction{}, false
	}

	return insts.Instruction{
		FU:      fu,
		Dest:    insts.ParseReg(fields[1]),
		Src1:    insts.ParseReg(fields[2]),
		Src2:    insts.ParseReg(fields[3]),
		Latency: latency,
	}, true
}

// Write emits instructions in trace format.
func Write(w io.Writer, trace []insts.Instruction) error {
	bw := bufio.NewWriter(w)
	for _, inst := range trace {
		if _, err := fmt.Fprintln(bw, inst.String()); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}

	return nil
}
