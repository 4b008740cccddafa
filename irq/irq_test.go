package irq

import (
	"testing"

	"github.com/ember-systems/motordriver/motor"
	"github.com/ember-systems/motordriver/register"
	"github.com/ember-systems/motordriver/sensor"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	regs := register.New()
	m := motor.New(regs)
	s := sensor.New(regs)
	return New(regs, m, s)
}

func TestTriggerDisabledSourceLeavesPendingUnchanged(t *testing.T) {
	ic := newController(t)
	ic.Trigger(MotorFault)
	if got := ic.PendingMask(); got != 0 {
		t.Errorf("got pending mask 0x%x expected 0 (source not enabled)", got)
	}
}

func TestTriggerEnabledSourceSetsPendingAndRegister(t *testing.T) {
	ic := newController(t)
	ic.Enable(SensorReady)
	ic.Trigger(SensorReady)

	want := uint32(1) << uint(SensorReady)
	if got := ic.PendingMask(); got != want {
		t.Errorf("got pending mask 0x%x expected 0x%x", got, want)
	}
	if got := ic.regs.Read(register.IRQStatus); got != want {
		t.Errorf("got IRQ_STATUS 0x%x expected 0x%x", got, want)
	}
}

func TestProcessPendingDispatchesAndClearsAll(t *testing.T) {
	ic := newController(t)

	var invoked []Source
	for _, s := range []Source{MotorFault, SensorReady} {
		src := s
		ic.RegisterHandler(src, func(source Source, ctx any) {
			invoked = append(invoked, source)
		}, nil)
		ic.Enable(src)
	}
	ic.Trigger(MotorFault)
	ic.Trigger(SensorReady)
	ic.Trigger(MotorStall) // not enabled, stays unset

	n := ic.ProcessPending()
	if n != 2 {
		t.Errorf("got %d handlers invoked expected 2", n)
	}
	if len(invoked) != 2 || invoked[0] != MotorFault || invoked[1] != SensorReady {
		t.Errorf("got dispatch order %v expected [MotorFault SensorReady]", invoked)
	}
	if ic.PendingMask() != 0 {
		t.Errorf("got pending mask 0x%x expected 0", ic.PendingMask())
	}
	if got := ic.regs.Read(register.IRQStatus); got != 0 {
		t.Errorf("got IRQ_STATUS 0x%x expected 0", got)
	}
}

func TestProcessPendingClearsPendingBitEvenWithoutHandler(t *testing.T) {
	ic := newController(t)
	ic.Enable(Timer)
	ic.Trigger(Timer)

	n := ic.ProcessPending()
	if n != 0 {
		t.Errorf("got %d handlers invoked expected 0 (no handler registered)", n)
	}
	if ic.IsPending(Timer) {
		t.Errorf("Timer still pending after drain with no handler")
	}
}

func TestDispatchTwiceWithInterveningDrain(t *testing.T) {
	ic := newController(t)
	count := 0
	ic.RegisterHandler(MotorFault, func(source Source, ctx any) { count++ }, nil)
	ic.Enable(MotorFault)

	ic.Trigger(MotorFault)
	ic.ProcessPending()
	ic.Trigger(MotorFault)
	ic.ProcessPending()

	if count != 2 {
		t.Errorf("got count %d expected 2", count)
	}
	if ic.PendingMask() != 0 {
		t.Errorf("got pending mask 0x%x expected 0", ic.PendingMask())
	}
}
