package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/r10ksim/timing/pipeline"
	"github.com/sarchlab/r10ksim/tracegen"
)

var _ = Describe("Random traces", func() {
	DescribeTable("should hold the pipeline properties",
		func(seed uint64, mutate func(p *pipeline.Params)) {
			cfg := tracegen.DefaultConfig()
			cfg.Count = 300
			cfg.Seed = seed
			trace, err := tracegen.Generate(cfg)
			Expect(err).NotTo(HaveOccurred())

			params := pipeline.ReferenceParams()
			if mutate != nil {
				mutate(&params)
			}
			e := mustEngine(params, trace)

			retiredAt := map[uint64]int{}
			for !e.Drained() {
				Expect(e.Cycle()).To(BeNumerically("<", 20000), "pipeline deadlocked")

				ev := e.Tick()
				Expect(e.CheckInvariants()).To(Succeed(), "cycle %d", ev.Cycle)

				if ev.FreedTag != pipeline.NoTag {
					entry := e.ROBEntries()[ev.Retired]
					Expect(entry.OldTag).To(Equal(ev.FreedTag))
					Expect(entry.Retired).To(Equal(ev.Cycle))
				}
				if ev.Retired >= 0 {
					retiredAt[ev.Cycle] = ev.Retired
				}
			}

			entries := e.ROBEntries()
			Expect(entries).To(HaveLen(len(trace)))

			perCycle := func(stamp func(pipeline.ROBEntry) uint64) map[uint64]int {
				counts := map[uint64]int{}
				for _, entry := range entries {
					counts[stamp(entry)]++
				}
				return counts
			}
			for _, counts := range []map[uint64]int{
				perCycle(func(x pipeline.ROBEntry) uint64 { return x.Issued }),
				perCycle(func(x pipeline.ROBEntry) uint64 { return x.Completed }),
				perCycle(func(x pipeline.ROBEntry) uint64 { return x.Retired }),
			} {
				for cycle, n := range counts {
					Expect(cycle).NotTo(BeZero())
					Expect(n).To(Equal(1), "cycle %d", cycle)
				}
			}

			for i, entry := range entries {
				Expect(entry.TraceIndex).To(Equal(i))
				if i > 0 {
					Expect(entry.Retired).To(BeNumerically(">", entries[i-1].Retired))
				}
			}

			stats := e.Stats()
			Expect(stats.Retired).To(Equal(uint64(len(trace))))
			Expect(retiredAt).To(HaveLen(len(trace)))
		},
		Entry("reference core, seed 1", uint64(1), nil),
		Entry("reference core, seed 7", uint64(7), nil),
		Entry("minimal rename headroom", uint64(3), func(p *pipeline.Params) {
			p.PhysRegs = 9
		}),
		Entry("tiny ROB", uint64(4), func(p *pipeline.Params) {
			p.ROBEntries = 2
		}),
		Entry("one station per class", uint64(5), func(p *pipeline.Params) {
			p.Stations = []pipeline.StationDesc{{FU: 0}, {FU: 1}, {FU: 2}}
		}),
		Entry("large core", uint64(6), func(p *pipeline.Params) {
			p.PhysRegs = 64
			p.ROBEntries = 32
			p.Stations = append(p.Stations,
				pipeline.StationDesc{FU: 0, Instance: 1},
				pipeline.StationDesc{FU: 1, Instance: 0},
				pipeline.StationDesc{FU: 2, Instance: 1},
			)
		}),
	)
})
