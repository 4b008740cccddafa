// Package scenarios registers the seven literal end-to-end acceptance
// checks for the driver against the harness registry.
/*
 * Copyright 2026, Ember Systems Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */
package scenarios

import (
	"fmt"

	"github.com/ember-systems/motordriver/harness"
	"github.com/ember-systems/motordriver/irq"
	"github.com/ember-systems/motordriver/motor"
	"github.com/ember-systems/motordriver/register"
	"github.com/ember-systems/motordriver/sensor"
)

func init() {
	harness.Register("init_and_readback", initAndReadback)
	harness.Register("motor_start_and_ramp", motorStartAndRamp)
	harness.Register("motor_stop", motorStop)
	harness.Register("fault_and_recovery", faultAndRecovery)
	harness.Register("sensor_clamping", sensorClamping)
	harness.Register("irq_dispatch", irqDispatch)
	harness.Register("buffer_overflow_bit", bufferOverflowBit)
}

func initAndReadback() error {
	regs := register.New()
	for off := uint32(0); off < register.Size; off += 4 {
		if got := regs.Read(off); got != 0 {
			return fmt.Errorf("offset 0x%02x: expected 0, got 0x%08x", off, got)
		}
	}
	regs.Write(0x00, 0xDEADBEEF)
	regs.Write(0x14, 0x12345678)
	if got := regs.Read(0x00); got != 0xDEADBEEF {
		return fmt.Errorf("offset 0x00: expected 0xDEADBEEF, got 0x%08x", got)
	}
	if got := regs.Read(0x14); got != 0x12345678 {
		return fmt.Errorf("offset 0x14: expected 0x12345678, got 0x%08x", got)
	}
	return nil
}

func motorStartAndRamp() error {
	regs := register.New()
	m := motor.New(regs)
	if status := m.Start(5000, motor.CW); status != motor.StatusOK {
		return fmt.Errorf("start failed: %v", status)
	}
	if m.State() != motor.Starting {
		return fmt.Errorf("expected starting, got %v", m.State())
	}
	if regs.Read(register.MotorCtrl)&register.MotorCtrlEnable == 0 {
		return fmt.Errorf("MOTOR_CTRL.enable not set after start")
	}

	prev := uint32(0)
	for i := 0; i < 20; i++ {
		m.Update()
		if m.Speed() < prev {
			return fmt.Errorf("speed decreased at tick %d: %d -> %d", i, prev, m.Speed())
		}
		prev = m.Speed()
	}
	if m.Speed() != 5000 {
		return fmt.Errorf("expected speed 5000, got %d", m.Speed())
	}
	if m.State() != motor.Running {
		return fmt.Errorf("expected running, got %v", m.State())
	}
	return nil
}

func motorStop() error {
	regs := register.New()
	m := motor.New(regs)
	m.Start(5000, motor.CW)
	for i := 0; i < 20; i++ {
		m.Update()
	}
	m.Stop()
	if m.State() != motor.Stopping {
		return fmt.Errorf("expected stopping, got %v", m.State())
	}
	for i := 0; i < 20; i++ {
		m.Update()
	}
	if m.State() != motor.Idle {
		return fmt.Errorf("expected idle, got %v", m.State())
	}
	if m.Speed() != 0 {
		return fmt.Errorf("expected speed 0, got %d", m.Speed())
	}
	return nil
}

func faultAndRecovery() error {
	regs := register.New()
	m := motor.New(regs)
	m.Start(5000, motor.CW)
	m.InjectFault(motor.FaultStall)

	if m.State() != motor.Fault {
		return fmt.Errorf("expected fault, got %v", m.State())
	}
	if m.FaultCode() != motor.FaultStall {
		return fmt.Errorf("expected stall, got %v", m.FaultCode())
	}
	if regs.Read(register.MotorStatus)&register.MotorStatusStall == 0 {
		return fmt.Errorf("MOTOR_STATUS.stall not set")
	}

	m.ClearFault()
	if m.State() != motor.Recovery {
		return fmt.Errorf("expected recovery, got %v", m.State())
	}
	m.Update()
	if m.State() != motor.Idle {
		return fmt.Errorf("expected idle after recovery tick, got %v", m.State())
	}
	if m.FaultCode() != motor.FaultNone {
		return fmt.Errorf("expected no fault, got %v", m.FaultCode())
	}
	return nil
}

func sensorClamping() error {
	regs := register.New()
	s := sensor.New(regs)
	s.Enable()
	s.SetSimulatedValue(2, 9999)
	if status := s.Trigger(); status != 0 {
		return fmt.Errorf("trigger failed: %d", status)
	}
	s.Update()
	if got := s.Read(2); got != 125 {
		return fmt.Errorf("expected clamped value 125, got %d", got)
	}
	return nil
}

func irqDispatch() error {
	regs := register.New()
	m := motor.New(regs)
	s := sensor.New(regs)
	ic := irq.New(regs, m, s)

	count := 0
	ic.RegisterHandler(irq.MotorFault, func(source irq.Source, ctx any) {
		count++
	}, nil)
	ic.Enable(irq.MotorFault)

	ic.Trigger(irq.MotorFault)
	ic.ProcessPending()
	ic.Trigger(irq.MotorFault)
	ic.ProcessPending()

	if count != 2 {
		return fmt.Errorf("expected handler invoked 2 times, got %d", count)
	}
	if ic.PendingMask() != 0 {
		return fmt.Errorf("expected pending mask 0, got 0x%x", ic.PendingMask())
	}
	return nil
}

func bufferOverflowBit() error {
	regs := register.New()
	s := sensor.New(regs)

	for i := 0; i < 15; i++ {
		if !s.Push(int32(i)) {
			return fmt.Errorf("push %d: unexpected overflow", i)
		}
	}
	if s.Push(15) {
		return fmt.Errorf("push 16: expected overflow, got success")
	}
	if regs.Read(register.SensorStatus)&register.SensorStatusOverflow == 0 {
		return fmt.Errorf("SENSOR_STATUS.overflow not set")
	}
	return nil
}
