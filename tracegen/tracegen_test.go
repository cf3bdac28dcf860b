package tracegen_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/r10ksim/insts"
	"github.com/sarchlab/r10ksim/tracegen"
)

var _ = Describe("Generate", func() {
	It("should generate the requested number of instructions", func() {
		trace, err := tracegen.Generate(tracegen.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(trace).To(HaveLen(1000))
	})

	It("should be deterministic for a seed", func() {
		cfg := tracegen.DefaultConfig()
		cfg.Count = 200

		a, _ := tracegen.Generate(cfg)
		b, _ := tracegen.Generate(cfg)
		Expect(a).To(Equal(b))

		cfg.Seed = 2
		c, _ := tracegen.Generate(cfg)
		Expect(c).NotTo(Equal(a))
	})

	It("should stay within the configured ranges", func() {
		cfg := tracegen.DefaultConfig()
		cfg.FUClasses = 2
		cfg.MaxLatency = 4

		trace, err := tracegen.Generate(cfg)
		Expect(err).NotTo(HaveOccurred())

		allowed := map[insts.Reg]bool{insts.NoReg: true}
		for _, r := range cfg.ArchRegs {
			allowed[r] = true
		}

		for _, inst := range trace {
			Expect(inst.FU).To(BeNumerically(">=", 0))
			Expect(inst.FU).To(BeNumerically("<", 2))
			Expect(inst.Latency).To(BeNumerically("<=", 4))
			Expect(allowed).To(HaveKey(inst.Dest))
			Expect(allowed).To(HaveKey(inst.Src1))
			Expect(allowed).To(HaveKey(inst.Src2))
			if !inst.HasDest() {
				Expect(inst.Src1.Valid()).To(BeTrue())
				Expect(inst.Src2.Valid()).To(BeTrue())
			}
		}
	})

	It("should honor the store ratio extremes", func() {
		cfg := tracegen.DefaultConfig()
		cfg.Count = 100

		cfg.StoreRatio = 0
		trace, _ := tracegen.Generate(cfg)
		for _, inst := range trace {
			Expect(inst.HasDest()).To(BeTrue())
		}

		cfg.StoreRatio = 1
		trace, _ = tracegen.Generate(cfg)
		for _, inst := range trace {
			Expect(inst.HasDest()).To(BeFalse())
		}
	})

	DescribeTable("should reject invalid configurations",
		func(mutate func(c *tracegen.Config)) {
			cfg := tracegen.DefaultConfig()
			mutate(&cfg)
			_, err := tracegen.Generate(cfg)
			Expect(err).To(HaveOccurred())
		},
		Entry("negative count", func(c *tracegen.Config) { c.Count = -1 }),
		Entry("no fu classes", func(c *tracegen.Config) { c.FUClasses = 0 }),
		Entry("store ratio above 1", func(c *tracegen.Config) { c.StoreRatio = 1.5 }),
		Entry("no registers", func(c *tracegen.Config) { c.ArchRegs = nil }),
	)
})
