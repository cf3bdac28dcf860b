package report_test

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/r10ksim/insts"
	"github.com/sarchlab/r10ksim/report"
	"github.com/sarchlab/r10ksim/timing/pipeline"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func lineWith(text, substr string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

var _ = Describe("Report", func() {
	var (
		engine *pipeline.Engine
		buf    bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		engine, err = pipeline.NewEngine(pipeline.ReferenceParams(), insts.ReferenceTrace())
		Expect(err).NotTo(HaveOccurred())
		buf.Reset()
	})

	Describe("RenderROB", func() {
		It("should mark head and tail of the live window", func() {
			engine.RunCycles(6)

			Expect(report.RenderROB(&buf, engine.Snapshot())).To(Succeed())
			out := buf.String()

			Expect(out).To(ContainSubstring("Reorder Buffer (cycle 7, 4/8 live)"))
			Expect(lineWith(out, "PR#10")).To(ContainSubstring(" h "))
			Expect(lineWith(out, "PR#13")).To(ContainSubstring(" t "))
			Expect(lineWith(out, "PR#9")).NotTo(ContainSubstring(" h "))
		})

		It("should leave unreached cycles blank", func() {
			engine.RunCycles(1)

			Expect(report.RenderROB(&buf, engine.Snapshot())).To(Succeed())
			row := lineWith(buf.String(), "PR#9")
			Expect(row).To(ContainSubstring("PR#3"))
			Expect(row).To(ContainSubstring("ht"))
			Expect(row).NotTo(ContainSubstring("2"))
		})

		It("should print the full timeline once drained", func() {
			engine.RunUntilDrained(0)

			Expect(report.RenderROB(&buf, engine.Snapshot())).To(Succeed())
			row := lineWith(buf.String(), "PR#15")
			for _, c := range []string{"11", "12", "14", "18"} {
				Expect(row).To(ContainSubstring(c))
			}
		})
	})

	Describe("RenderStations", func() {
		It("should list every station", func() {
			engine.RunCycles(2)

			Expect(report.RenderStations(&buf, engine.Snapshot())).To(Succeed())
			out := buf.String()

			Expect(out).To(ContainSubstring("Reservation Stations"))
			Expect(strings.Count(out, " no ") + strings.Count(out, " yes ")).To(Equal(5))
			Expect(lineWith(out, "PR#10")).To(ContainSubstring("PR#9"))
		})
	})

	Describe("RenderMapTable", func() {
		It("should show ready tags with a plus", func() {
			Expect(report.RenderMapTable(&buf, engine.Snapshot())).To(Succeed())
			out := buf.String()

			Expect(lineWith(out, " f0 ")).To(ContainSubstring("PR#1+"))
			Expect(lineWith(out, " r4 ")).To(ContainSubstring("PR#8+"))
		})
	})

	Describe("RenderFreeList", func() {
		It("should list free registers in allocation order", func() {
			engine.RunUntilDrained(0)

			Expect(report.RenderFreeList(&buf, engine.Snapshot())).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("16 3 1 2 9 5 6 8"))
		})
	})

	Describe("Render", func() {
		It("should write all sections", func() {
			Expect(report.Render(&buf, engine.Snapshot())).To(Succeed())
			out := buf.String()

			Expect(out).To(ContainSubstring("Reorder Buffer"))
			Expect(out).To(ContainSubstring("Reservation Stations"))
			Expect(out).To(ContainSubstring("Map Table"))
			Expect(out).To(ContainSubstring("9 10 11 12 13 14 15 16"))
		})

		It("should return write errors", func() {
			err := report.Render(failingWriter{}, engine.Snapshot())
			Expect(err).To(MatchError(ContainSubstring("broken pipe")))
		})
	})

	Describe("Summary", func() {
		It("should print statistics", func() {
			engine.RunUntilDrained(0)

			Expect(report.Summary(&buf, engine.Stats())).To(Succeed())
			out := buf.String()

			Expect(lineWith(out, "Cycles")).To(ContainSubstring("18"))
			Expect(lineWith(out, "CPI")).To(ContainSubstring("2.250"))
			Expect(lineWith(out, "Station stalls")).To(ContainSubstring("1"))
		})
	})
})
