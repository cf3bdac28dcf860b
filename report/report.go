// Package report renders pipeline state and statistics as text tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/r10ksim/timing/pipeline"
)

// Render writes the ROB, reservation stations, map table and free list of a
// snapshot.
func Render(w io.Writer, snap pipeline.Snapshot) error {
	renderers := []func(io.Writer, pipeline.Snapshot) error{
		RenderROB,
		RenderStations,
		RenderMapTable,
		RenderFreeList,
	}

	for _, render := range renderers {
		if err := render(w, snap); err != nil {
			return err
		}
	}

	return nil
}

func write(w io.Writer, t table.Writer) error {
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func tagString(id pipeline.TagID) string {
	if id == pipeline.NoTag {
		return ""
	}
	return fmt.Sprintf("PR#%d", id)
}

func physTagString(t pipeline.PhysTag) string {
	s := tagString(t.ID)
	if t.Ready {
		s += "+"
	}
	return s
}

func operandString(o pipeline.Operand) string {
	if !o.Present {
		return ""
	}
	return physTagString(o.Tag)
}

func cycleString(c uint64) string {
	if c == 0 {
		return ""
	}
	return strconv.FormatUint(c, 10)
}

func robMarker(snap pipeline.Snapshot, i int) string {
	marker := ""
	if i == snap.Head {
		marker += "h"
	}
	if i == snap.Tail-1 && snap.Tail > snap.Head {
		marker += "t"
	}
	return marker
}

// RenderROB writes every ROB entry with its rename tags and S/X/C/R cycles.
// The oldest live entry is marked h and the youngest t.
func RenderROB(w io.Writer, snap pipeline.Snapshot) error {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Reorder Buffer (cycle %d, %d/%d live)",
		snap.Cycle, snap.Tail-snap.Head, snap.Capacity))
	t.AppendHeader(table.Row{"", "#", "Inst", "RS", "T", "Told", "S", "X", "C", "R"})

	for i, e := range snap.Entries {
		t.AppendRow(table.Row{
			robMarker(snap, i),
			i,
			e.TraceIndex,
			e.Station,
			tagString(e.NewTag),
			tagString(e.OldTag),
			cycleString(e.Issued),
			cycleString(e.ExecStarted),
			cycleString(e.Completed),
			cycleString(e.Retired),
		})
	}

	return write(w, t)
}

// RenderStations writes the reservation stations.
func RenderStations(w io.Writer, snap pipeline.Snapshot) error {
	t := table.NewWriter()
	t.SetTitle("Reservation Stations")
	t.AppendHeader(table.Row{"#", "FU", "Unit", "Busy", "T", "T1", "T2"})

	for i, s := range snap.Stations {
		busy := "no"
		dest, op1, op2 := "", "", ""
		if s.Busy {
			busy = "yes"
			dest = tagString(s.Dest)
			op1 = operandString(s.Op1)
			op2 = operandString(s.Op2)
		}
		t.AppendRow(table.Row{i, s.FU, s.Instance, busy, dest, op1, op2})
	}

	return write(w, t)
}

// RenderMapTable writes the architectural to physical register mapping.
// Ready tags carry a + suffix.
func RenderMapTable(w io.Writer, snap pipeline.Snapshot) error {
	t := table.NewWriter()
	t.SetTitle("Map Table")
	t.AppendHeader(table.Row{"Reg", "Tag"})

	for _, m := range snap.MapTable {
		t.AppendRow(table.Row{m.Reg.String(), physTagString(m.Tag)})
	}

	return write(w, t)
}

// RenderFreeList writes the free list, next allocation first.
func RenderFreeList(w io.Writer, snap pipeline.Snapshot) error {
	ids := make([]string, len(snap.FreeList))
	for i, id := range snap.FreeList {
		ids[i] = strconv.FormatUint(uint64(id), 10)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Free List"})
	t.AppendRow(table.Row{strings.Join(ids, " ")})

	return write(w, t)
}

// Summary writes the run statistics.
func Summary(w io.Writer, stats pipeline.Statistics) error {
	t := table.NewWriter()
	t.SetTitle("Statistics")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Cycles", stats.Cycles},
		{"Dispatched", stats.Dispatched},
		{"Issued", stats.Issued},
		{"Completed", stats.Completed},
		{"Retired", stats.Retired},
		{"CPI", fmt.Sprintf("%.3f", stats.CPI())},
		{"IPC", fmt.Sprintf("%.3f", stats.IPC())},
		{"ROB full stalls", stats.ROBFullStalls},
		{"Free list stalls", stats.FreeListStalls},
		{"Station stalls", stats.StationStalls},
		{"FU conflicts", stats.FUConflicts},
	})

	return write(w, t)
}
