package driver

import (
	"testing"

	"github.com/ember-systems/motordriver/config"
	"github.com/ember-systems/motordriver/ipc"
	"github.com/ember-systems/motordriver/irq"
	"github.com/ember-systems/motordriver/motor"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.SensorTriggerEvery = 2
	return cfg
}

func TestNewWiresEnabledSources(t *testing.T) {
	d := New(testConfig())

	// Default config enables motor_fault but not sensor_error; Trigger is a
	// no-op against a disabled source, so this also exercises the gate.
	d.IRQ.Trigger(irq.MotorFault)
	if !d.IRQ.IsPending(irq.MotorFault) {
		t.Error("expected motor_fault enabled per default config")
	}

	d.IRQ.Trigger(irq.SensorError)
	if d.IRQ.IsPending(irq.SensorError) {
		t.Error("expected sensor_error disabled per default config")
	}
}

func TestStepAdvancesMotorAndPublishesStatus(t *testing.T) {
	d := New(testConfig())
	done := make(chan ipc.Response, 1)
	go func() { done <- d.Mailbox.WaitResponse() }()

	d.Mailbox.SendCommand(ipc.Command{Kind: ipc.MotorStart, Param1: 1000, Param2: 1})
	d.step()

	resp := <-done
	if resp.Status != ipc.OK {
		t.Errorf("got response status %v expected OK", resp.Status)
	}

	// A step publishes status before draining the command, so the start is
	// only visible in the snapshot published by the next step.
	d.step()

	st := d.Mailbox.Status()
	if st.MotorState != uint32(motor.Starting) && st.MotorState != uint32(motor.Running) {
		t.Errorf("got motor state %d expected starting/running", st.MotorState)
	}
}

func TestHandleCommandGetStatus(t *testing.T) {
	d := New(testConfig())
	resp := d.handleCommand(ipc.Command{Kind: ipc.GetStatus})
	if resp.Status != ipc.OK {
		t.Errorf("got status %v expected OK", resp.Status)
	}
}

func TestHandleCommandUnknownKind(t *testing.T) {
	d := New(testConfig())
	resp := d.handleCommand(ipc.Command{Kind: ipc.CommandKind(99)})
	if resp.Status != ipc.InvalidCommand {
		t.Errorf("got status %v expected InvalidCommand", resp.Status)
	}
}

func TestDrainStopsMotorAndDisablesSensors(t *testing.T) {
	d := New(testConfig())
	d.Motor.Start(5000, motor.CW)
	for i := 0; i < 5; i++ {
		d.Motor.Update()
	}
	d.Sensors.Enable()

	d.drain()

	if d.Motor.IsRunning() {
		t.Error("expected motor stopped after drain")
	}
	if d.Sensors.State(0) != 0 {
		// Disabled == 0
		t.Errorf("expected sensors disabled after drain, got state %v", d.Sensors.State(0))
	}
}
