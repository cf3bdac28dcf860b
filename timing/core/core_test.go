package core_test

import (
	"bytes"
	"log/slog"
	"strings"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/r10ksim/insts"
	"github.com/sarchlab/r10ksim/timing/core"
	"github.com/sarchlab/r10ksim/timing/pipeline"
)

var _ = Describe("Core", func() {
	var (
		mockCtrl *gomock.Controller
		engine   sim.Engine
		pipe     *pipeline.Engine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = sim.NewSerialEngine()

		var err error
		pipe, err = pipeline.NewEngine(pipeline.ReferenceParams(), insts.ReferenceTrace())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run until drained by default", func() {
		c := core.NewBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Core", pipe)

		Expect(c.Run()).To(Succeed())
		Expect(c.Drained()).To(BeTrue())
		Expect(c.Stats().Cycles).To(Equal(uint64(18)))
		Expect(c.Stats().Retired).To(Equal(uint64(8)))
		Expect(c.Pipeline()).To(BeIdenticalTo(pipe))
	})

	It("should stop at the cycle budget", func() {
		c := core.NewBuilder().
			WithEngine(engine).
			WithCycleBudget(6).
			Build("Core", pipe)

		Expect(c.Run()).To(Succeed())
		Expect(c.Stats().Cycles).To(Equal(uint64(6)))
		Expect(c.Drained()).To(BeFalse())
		Expect(pipe.FreeList()).To(Equal([]pipeline.TagID{14, 15, 16, 3}))
	})

	It("should keep ticking past drain without stop on drain", func() {
		c := core.NewBuilder().
			WithEngine(engine).
			WithCycleBudget(25).
			Build("Core", pipe)

		Expect(c.Run()).To(Succeed())
		Expect(c.Stats().Cycles).To(Equal(uint64(25)))
		Expect(c.Stats().Retired).To(Equal(uint64(8)))
	})

	It("should stop on whichever comes first", func() {
		c := core.NewBuilder().
			WithEngine(engine).
			WithCycleBudget(1000).
			WithStopOnDrain(true).
			Build("Core", pipe)

		Expect(c.Run()).To(Succeed())
		Expect(c.Stats().Cycles).To(Equal(uint64(18)))
	})

	It("should create its own engine", func() {
		c := core.NewBuilder().Build("Core", pipe)

		Expect(c.Run()).To(Succeed())
		Expect(c.Drained()).To(BeTrue())
	})

	It("should invoke hooks once per cycle", func() {
		c := core.NewBuilder().
			WithEngine(engine).
			WithCycleBudget(5).
			Build("Core", pipe)

		var cycles []uint64
		hook := NewMockHook(mockCtrl)
		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx sim.HookCtx) {
				Expect(ctx.Pos).To(BeIdenticalTo(core.HookPosCycle))
				Expect(ctx.Domain).To(BeIdenticalTo(c))
				ev, ok := ctx.Item.(pipeline.CycleEvents)
				Expect(ok).To(BeTrue())
				cycles = append(cycles, ev.Cycle)
			}).
			Times(5)
		c.AcceptHook(hook)

		Expect(c.Run()).To(Succeed())
		Expect(cycles).To(Equal([]uint64{1, 2, 3, 4, 5}))
	})

	It("should report dispatch and retire through hook items", func() {
		c := core.NewBuilder().WithEngine(engine).Build("Core", pipe)

		var events []pipeline.CycleEvents
		hook := NewMockHook(mockCtrl)
		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx sim.HookCtx) {
				events = append(events, ctx.Item.(pipeline.CycleEvents))
			}).
			AnyTimes()
		c.AcceptHook(hook)

		Expect(c.Run()).To(Succeed())
		Expect(events).To(HaveLen(18))
		Expect(events[0].Dispatched).To(Equal(0))
		Expect(events[17].Retired).To(Equal(7))
	})
})

var _ = Describe("Trace Hook", func() {
	It("should log every cycle at trace level", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf,
			&slog.HandlerOptions{Level: core.LevelTrace}))

		pipe, err := pipeline.NewEngine(pipeline.ReferenceParams(), insts.ReferenceTrace())
		Expect(err).NotTo(HaveOccurred())

		c := core.NewBuilder().Build("Core", pipe)
		c.AcceptHook(core.NewTraceHook(logger))

		Expect(c.Run()).To(Succeed())
		Expect(strings.Count(buf.String(), "msg=Cycle")).To(Equal(18))
		Expect(buf.String()).To(ContainSubstring("Stall=no-station"))
	})

	It("should stay quiet above trace level", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf,
			&slog.HandlerOptions{Level: slog.LevelWarn}))

		pipe, err := pipeline.NewEngine(pipeline.ReferenceParams(), insts.ReferenceTrace())
		Expect(err).NotTo(HaveOccurred())

		c := core.NewBuilder().Build("Core", pipe)
		c.AcceptHook(core.NewTraceHook(logger))

		Expect(c.Run()).To(Succeed())
		Expect(buf.String()).To(BeEmpty())
	})

	It("should ignore other hook positions", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf,
			&slog.HandlerOptions{Level: core.LevelTrace}))

		core.NewTraceHook(logger).Func(sim.HookCtx{
			Pos:  &sim.HookPos{Name: "Other"},
			Item: pipeline.CycleEvents{},
		})
		Expect(buf.String()).To(BeEmpty())
	})
})
