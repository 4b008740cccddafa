package sensor

import (
	"testing"

	"github.com/ember-systems/motordriver/register"
)

func TestValueClampingHappensOnUpdateNotOnSet(t *testing.T) {
	regs := register.New()
	a := New(regs)
	a.Enable()

	a.SetSimulatedValue(2, 9999)
	if got := a.Read(2); got != 9999 {
		t.Fatalf("got %d expected unclamped 9999 before trigger+update", got)
	}

	if status := a.Trigger(); status != 0 {
		t.Fatalf("trigger failed: %d", status)
	}
	a.Update()

	if got := a.Read(2); got != 125 {
		t.Errorf("got %d expected clamped 125", got)
	}
}

func TestTriggerFailsWhenDisabled(t *testing.T) {
	regs := register.New()
	a := New(regs)
	if status := a.Trigger(); status != -2 {
		t.Errorf("got %d expected -2 (not enabled)", status)
	}
}

func TestRingPushPopOrdering(t *testing.T) {
	var r ring
	for i := int32(0); i < 10; i++ {
		if !r.push(i) {
			t.Fatalf("push %d unexpectedly failed", i)
		}
	}
	for i := int32(0); i < 10; i++ {
		v, ok := r.pop()
		if !ok {
			t.Fatalf("pop %d: expected ok", i)
		}
		if v != i {
			t.Errorf("pop %d: got %d expected %d", i, v, i)
		}
	}
}

func TestRingCountAfterPushesAndPops(t *testing.T) {
	var r ring
	for i := int32(0); i < 5; i++ {
		r.push(i)
	}
	r.pop()
	r.pop()
	if got := r.count(); got != 3 {
		t.Errorf("got count %d expected 3", got)
	}
}

func TestRingOverflowSetsStatusBit(t *testing.T) {
	regs := register.New()
	a := New(regs)

	for i := 0; i < ringCapacity-1; i++ {
		if !a.Push(int32(i)) {
			t.Fatalf("push %d: unexpected overflow", i)
		}
	}
	if a.Push(999) {
		t.Fatalf("push %d: expected overflow, got success", ringCapacity-1)
	}
	if regs.Read(register.SensorStatus)&register.SensorStatusOverflow == 0 {
		t.Errorf("SENSOR_STATUS.overflow not set")
	}
}

func TestClearBufferResetsOverflow(t *testing.T) {
	regs := register.New()
	a := New(regs)
	for i := 0; i < ringCapacity; i++ {
		a.Push(int32(i))
	}
	if regs.Read(register.SensorStatus)&register.SensorStatusOverflow == 0 {
		t.Fatalf("setup: expected overflow bit set")
	}
	a.ClearBuffer()
	if regs.Read(register.SensorStatus)&register.SensorStatusOverflow != 0 {
		t.Errorf("overflow bit still set after clear")
	}
	if a.Count() != 0 {
		t.Errorf("got count %d expected 0", a.Count())
	}
}

func TestContinuousModeAutoRetriggers(t *testing.T) {
	regs := register.New()
	a := New(regs)
	a.Enable()
	a.SetContinuous(true)

	a.Trigger()
	for i := 0; i < Count; i++ {
		if a.State(i) != Sampling {
			t.Fatalf("channel %d: got state %v expected sampling", i, a.State(i))
		}
	}
	a.Update()
	for i := 0; i < Count; i++ {
		if a.State(i) != Sampling {
			t.Errorf("channel %d: got state %v expected re-triggered sampling", i, a.State(i))
		}
	}
	if a.Count() != Count {
		t.Errorf("got buffered count %d expected %d", a.Count(), Count)
	}
}
