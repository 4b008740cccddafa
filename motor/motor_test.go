package motor

import (
	"testing"

	"github.com/ember-systems/motordriver/register"
)

func TestStartAndRampToTarget(t *testing.T) {
	regs := register.New()
	m := New(regs)

	if status := m.Start(5000, CW); status != StatusOK {
		t.Fatalf("start failed: %v", status)
	}
	if m.State() != Starting {
		t.Errorf("got state %v expected starting", m.State())
	}
	if regs.Read(register.MotorCtrl)&register.MotorCtrlEnable == 0 {
		t.Errorf("MOTOR_CTRL.enable not set")
	}

	for i := 0; i < 20; i++ {
		m.Update()
	}
	if m.Speed() != 5000 {
		t.Errorf("got speed %d expected 5000", m.Speed())
	}
	if m.State() != Running {
		t.Errorf("got state %v expected running", m.State())
	}
}

func TestCurrentSpeedNeverExceedsTarget(t *testing.T) {
	regs := register.New()
	m := New(regs)
	m.Start(777, CW)
	for i := 0; i < 10; i++ {
		m.Update()
		if m.Speed() > 777 {
			t.Fatalf("tick %d: speed %d exceeded target 777", i, m.Speed())
		}
	}
}

func TestStopRampsToIdle(t *testing.T) {
	regs := register.New()
	m := New(regs)
	m.Start(5000, CW)
	for i := 0; i < 20; i++ {
		m.Update()
	}
	m.Stop()
	if m.State() != Stopping {
		t.Errorf("got state %v expected stopping", m.State())
	}
	for i := 0; i < 20; i++ {
		m.Update()
	}
	if m.State() != Idle {
		t.Errorf("got state %v expected idle", m.State())
	}
	if m.Speed() != 0 {
		t.Errorf("got speed %d expected 0", m.Speed())
	}
}

func TestStopOnExactMultipleReachesIdleAtThreshold(t *testing.T) {
	regs := register.New()
	m := New(regs)
	m.Start(1000, CW)
	for i := 0; i < 2; i++ {
		m.Update()
	}
	if m.Speed() != 1000 {
		t.Fatalf("setup: got speed %d expected 1000", m.Speed())
	}
	m.Stop()

	m.Update() // 1000 -> 500
	if m.State() != Stopping {
		t.Fatalf("got state %v expected stopping after first ramp-down tick", m.State())
	}
	if m.Speed() != 500 {
		t.Fatalf("got speed %d expected 500", m.Speed())
	}

	m.Update() // 500 is not > 500, so this tick snaps to 0 and transitions
	if m.State() != Idle {
		t.Errorf("got state %v expected idle after second tick", m.State())
	}
	if m.Speed() != 0 {
		t.Errorf("got speed %d expected 0", m.Speed())
	}
}

func TestFaultBlocksStart(t *testing.T) {
	regs := register.New()
	m := New(regs)
	m.InjectFault(FaultOvercurrent)
	if status := m.Start(1000, CW); status != StatusFaultBlocked {
		t.Errorf("got status %v expected StatusFaultBlocked", status)
	}
}

func TestFaultPriorityStallBeatsOverheat(t *testing.T) {
	regs := register.New()
	m := New(regs)
	m.Start(1000, CW)
	regs.SetBits(register.MotorStatus, register.MotorStatusStall|register.MotorStatusOverheat)
	m.Update()
	if m.State() != Fault {
		t.Fatalf("got state %v expected fault", m.State())
	}
	if m.FaultCode() != FaultStall {
		t.Errorf("got fault %v expected stall (highest priority)", m.FaultCode())
	}
}

func TestInjectFaultThenClearFaultThenRecovery(t *testing.T) {
	regs := register.New()
	m := New(regs)
	m.Start(5000, CW)
	m.InjectFault(FaultStall)

	if m.State() != Fault || m.FaultCode() != FaultStall {
		t.Fatalf("got state=%v fault=%v expected fault/stall", m.State(), m.FaultCode())
	}
	if regs.Read(register.MotorStatus)&register.MotorStatusStall == 0 {
		t.Errorf("MOTOR_STATUS.stall not set")
	}

	m.ClearFault()
	if m.State() != Recovery {
		t.Fatalf("got state %v expected recovery", m.State())
	}
	m.Update()
	if m.State() != Idle {
		t.Errorf("got state %v expected idle", m.State())
	}
	if m.FaultCode() != FaultNone {
		t.Errorf("got fault %v expected none", m.FaultCode())
	}
}

func TestBrakeIsUnconditionalAndImmediate(t *testing.T) {
	regs := register.New()
	m := New(regs)
	m.Start(5000, CW)
	for i := 0; i < 5; i++ {
		m.Update()
	}
	m.Brake()

	if m.State() != Idle {
		t.Errorf("got state %v expected idle", m.State())
	}
	if m.Speed() != 0 {
		t.Errorf("got speed %d expected 0", m.Speed())
	}
	if regs.Read(register.MotorCtrl)&register.MotorCtrlBrake == 0 {
		t.Errorf("MOTOR_CTRL.brake not set")
	}
	if regs.Read(register.MotorStatus)&register.MotorStatusRunning != 0 {
		t.Errorf("MOTOR_STATUS.running still set after brake")
	}
}

func TestRunningBitSetDuringStarting(t *testing.T) {
	regs := register.New()
	m := New(regs)
	m.Start(5000, CW)
	m.Update()
	if m.State() != Starting {
		t.Fatalf("got state %v expected starting after one tick", m.State())
	}
	if regs.Read(register.MotorStatus)&register.MotorStatusRunning == 0 {
		t.Errorf("MOTOR_STATUS.running not set while starting")
	}
}

func TestPositionIntegratesWithDirectionSign(t *testing.T) {
	regs := register.New()
	mcw := New(regs)
	mcw.Start(1000, CW)
	for i := 0; i < 10; i++ {
		mcw.Update()
	}
	if mcw.Position() <= 0 {
		t.Errorf("CW position %d expected positive", mcw.Position())
	}

	regs2 := register.New()
	mccw := New(regs2)
	mccw.Start(1000, CCW)
	for i := 0; i < 10; i++ {
		mccw.Update()
	}
	if mccw.Position() >= 0 {
		t.Errorf("CCW position %d expected negative", mccw.Position())
	}
}

func TestResetReturnsToIdleNoFault(t *testing.T) {
	regs := register.New()
	m := New(regs)
	m.Start(5000, CW)
	m.InjectFault(FaultStall)
	m.Reset()

	if m.State() != Idle {
		t.Errorf("got state %v expected idle", m.State())
	}
	if m.FaultCode() != FaultNone {
		t.Errorf("got fault %v expected none", m.FaultCode())
	}
	if m.Speed() != 0 {
		t.Errorf("got speed %d expected 0", m.Speed())
	}
}
