// Package main provides accuracy validation for the timing core.
// Ensures that changes to the pipeline preserve the calibrated timeline and
// the renaming invariants.
package main

import (
	"fmt"
	"reflect"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/r10ksim/insts"
	"github.com/sarchlab/r10ksim/timing/core"
	"github.com/sarchlab/r10ksim/timing/pipeline"
	"github.com/sarchlab/r10ksim/tracegen"
)

// referenceTimeline holds issue, execute, complete and retire cycles of
// the reference trace on the reference core.
var referenceTimeline = [][4]uint64{
	{2, 3, 5, 6},
	{5, 6, 10, 11},
	{4, 5, 7, 12},
	{10, 11, 13, 14},
	{6, 7, 8, 15},
	{8, 9, 11, 16},
	{13, 14, 16, 17},
	{11, 12, 14, 18},
}

func newReferenceEngine() *pipeline.Engine {
	engine, err := pipeline.NewEngine(pipeline.ReferenceParams(), insts.ReferenceTrace())
	if err != nil {
		panic(err)
	}
	return engine
}

// testReferenceTimeline validates the cycle of every stage transition of
// the reference trace.
func testReferenceTimeline() bool {
	fmt.Println("Testing reference timeline...")

	engine := newReferenceEngine()
	engine.RunUntilDrained(0)

	ok := true
	for i, e := range engine.ROBEntries() {
		got := [4]uint64{e.Issued, e.ExecStarted, e.Completed, e.Retired}
		if got != referenceTimeline[i] {
			fmt.Printf("❌ Entry %d: expected S/X/C/R %v, got %v\n",
				i, referenceTimeline[i], got)
			ok = false
			continue
		}
		fmt.Printf("✅ Entry %d: S/X/C/R %v\n", i, got)
	}

	if cycles := engine.Stats().Cycles; cycles != 18 {
		fmt.Printf("❌ Expected 18 cycles, got %d\n", cycles)
		ok = false
	}

	return ok
}

// testInvariants runs random traces and checks the renaming invariants
// after every cycle.
func testInvariants() bool {
	fmt.Println("\nTesting renaming invariants on random traces...")

	ok := true
	for _, seed := range []uint64{1, 2, 3, 42, 1234} {
		cfg := tracegen.DefaultConfig()
		cfg.Count = 500
		cfg.Seed = seed

		trace, err := tracegen.Generate(cfg)
		if err != nil {
			fmt.Printf("❌ Seed %d: %v\n", seed, err)
			ok = false
			continue
		}

		engine, err := pipeline.NewEngine(pipeline.ReferenceParams(), trace)
		if err != nil {
			fmt.Printf("❌ Seed %d: %v\n", seed, err)
			ok = false
			continue
		}

		var violation error
		for !engine.Drained() && violation == nil && engine.Cycle() < 100_000 {
			engine.Tick()
			violation = engine.CheckInvariants()
		}

		switch {
		case violation != nil:
			fmt.Printf("❌ Seed %d: cycle %d: %v\n", seed, engine.Cycle()-1, violation)
			ok = false
		case !engine.Drained():
			fmt.Printf("❌ Seed %d: did not drain\n", seed)
			ok = false
		default:
			fmt.Printf("✅ Seed %d: %d instructions in %d cycles\n",
				seed, cfg.Count, engine.Stats().Cycles)
		}
	}

	return ok
}

// testResetDeterminism validates that a reset engine replays the same run
// and that the akita core matches a direct run.
func testResetDeterminism() bool {
	fmt.Println("\nTesting reset and core determinism...")

	engine := newReferenceEngine()
	engine.RunUntilDrained(0)
	first := engine.Snapshot()

	engine.Reset()
	engine.RunUntilDrained(0)
	if !reflect.DeepEqual(first, engine.Snapshot()) {
		fmt.Println("❌ Reset run differs from first run")
		return false
	}
	fmt.Println("✅ Reset replays the same run")

	driven := newReferenceEngine()
	c := core.NewBuilder().Build("Core", driven)
	if err := c.Run(); err != nil {
		fmt.Printf("❌ Core run failed: %v\n", err)
		return false
	}
	if !reflect.DeepEqual(first, driven.Snapshot()) {
		fmt.Println("❌ Akita core run differs from direct run")
		return false
	}
	fmt.Println("✅ Akita core matches direct run")

	return true
}

func main() {
	fmt.Println("r10ksim Accuracy Validation")
	fmt.Println("===========================")

	allPassed := true
	allPassed = testReferenceTimeline() && allPassed
	allPassed = testInvariants() && allPassed
	allPassed = testResetDeterminism() && allPassed

	fmt.Println("\n===========================")
	if allPassed {
		fmt.Println("🎉 ALL ACCURACY TESTS PASSED")
		atexit.Exit(0)
	}

	fmt.Println("❌ ACCURACY TESTS FAILED")
	atexit.Exit(1)
}
