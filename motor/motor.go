// Package motor implements the motor state machine: speed ramping,
// direction tracking, position integration, and fault/recovery.
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
package motor

import "github.com/ember-systems/motordriver/register"

// State is one of the six lifecycle states.
type State int

const (
	Idle State = iota
	Starting
	Running
	Stopping
	Fault
	Recovery
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Fault:
		return "fault"
	case Recovery:
		return "recovery"
	default:
		return "unknown"
	}
}

// FaultCode identifies why the motor entered the fault state.
type FaultCode int

const (
	FaultNone FaultCode = iota
	FaultStall
	FaultOverheat
	FaultOvercurrent
)

// Direction of rotation.
type Direction int

const (
	CCW Direction = iota
	CW
)

// Status return codes. Zero is success; negative distinguishes error
// classes. StatusFaultBlocked (-2) is the one negative value whose meaning
// is part of the contract.
type Status int

const (
	StatusOK          Status = 0
	StatusInvalid     Status = -1
	StatusFaultBlocked Status = -2
)

const (
	maxSpeed      uint32 = 10000
	speedRampRate uint32 = 500
)

// Controller drives a register-backed motor through its lifecycle. It
// holds a non-owning reference to the register file.
type Controller struct {
	regs *register.File

	state     State
	faultCode FaultCode

	targetSpeed  uint32
	currentSpeed uint32
	position     int32
	direction    Direction
}

// New returns a Controller wired to regs, in the idle state with all motor
// registers cleared.
func New(regs *register.File) *Controller {
	c := &Controller{regs: regs, state: Idle, faultCode: FaultNone}
	regs.Write(register.MotorCtrl, 0)
	regs.Write(register.MotorStatus, 0)
	regs.Write(register.MotorSpeed, 0)
	regs.Write(register.MotorPosition, 0)
	return c
}

// Start clamps speed to the maximum, sets target and direction, and
// transitions to starting. Fails with StatusFaultBlocked if in fault.
func (c *Controller) Start(speed uint32, dir Direction) Status {
	if c.state == Fault {
		return StatusFaultBlocked
	}
	if speed > maxSpeed {
		speed = maxSpeed
	}
	c.targetSpeed = speed
	c.direction = dir
	c.state = Starting

	ctrl := register.MotorCtrlEnable
	if dir == CW {
		ctrl |= register.MotorCtrlDirCW
	}
	c.regs.Write(register.MotorCtrl, ctrl)
	return StatusOK
}

// Stop is idempotent when already idle; otherwise ramps to zero.
func (c *Controller) Stop() Status {
	if c.state == Idle {
		return StatusOK
	}
	c.targetSpeed = 0
	c.state = Stopping
	c.regs.ClearBits(register.MotorCtrl, register.MotorCtrlEnable)
	return StatusOK
}

// Brake is an unconditional emergency stop: it never waits for ramp-down.
func (c *Controller) Brake() Status {
	c.targetSpeed = 0
	c.currentSpeed = 0
	c.state = Idle

	c.regs.SetBits(register.MotorCtrl, register.MotorCtrlBrake)
	c.regs.ClearBits(register.MotorCtrl, register.MotorCtrlEnable)
	c.regs.Write(register.MotorSpeed, 0)
	c.regs.ClearBits(register.MotorStatus, register.MotorStatusRunning)
	return StatusOK
}

// SetSpeed updates the target speed only; ramp is applied by Update.
func (c *Controller) SetSpeed(speed uint32) Status {
	if c.state == Fault {
		return StatusFaultBlocked
	}
	if speed > maxSpeed {
		speed = maxSpeed
	}
	c.targetSpeed = speed
	return StatusOK
}

// Reset pulses MOTOR_CTRL with the reset bit, clears all motor registers,
// and returns the controller to idle with no fault.
func (c *Controller) Reset() Status {
	c.regs.Write(register.MotorCtrl, register.MotorCtrlReset)
	c.regs.Write(register.MotorStatus, 0)
	c.regs.Write(register.MotorSpeed, 0)
	c.regs.Write(register.MotorPosition, 0)

	c.state = Idle
	c.faultCode = FaultNone
	c.currentSpeed = 0
	c.targetSpeed = 0
	c.position = 0

	c.regs.ClearBits(register.MotorCtrl, register.MotorCtrlReset)
	return StatusOK
}

// Update runs one state-machine tick.
func (c *Controller) Update() Status {
	status := c.regs.Read(register.MotorStatus)
	if status&(register.MotorStatusFault|register.MotorStatusStall|register.MotorStatusOverheat) != 0 {
		if c.state != Fault {
			c.state = Fault
			switch {
			case status&register.MotorStatusStall != 0:
				c.faultCode = FaultStall
			case status&register.MotorStatusOverheat != 0:
				c.faultCode = FaultOverheat
			default:
				c.faultCode = FaultOvercurrent
			}
		}
		return StatusOK
	}

	switch c.state {
	case Idle:
		// nothing to do

	case Starting:
		if c.currentSpeed < c.targetSpeed {
			c.currentSpeed += speedRampRate
			if c.currentSpeed >= c.targetSpeed {
				c.currentSpeed = c.targetSpeed
				c.state = Running
			}
		} else {
			c.state = Running
		}
		c.regs.Write(register.MotorSpeed, c.currentSpeed)
		c.regs.SetBits(register.MotorStatus, register.MotorStatusRunning)

	case Running:
		switch {
		case c.currentSpeed < c.targetSpeed:
			c.currentSpeed += speedRampRate
			if c.currentSpeed > c.targetSpeed {
				c.currentSpeed = c.targetSpeed
			}
		case c.currentSpeed > c.targetSpeed:
			c.currentSpeed -= speedRampRate
			if c.currentSpeed < c.targetSpeed {
				c.currentSpeed = c.targetSpeed
			}
		}
		c.regs.Write(register.MotorSpeed, c.currentSpeed)

		if c.direction == CW {
			c.position += int32(c.currentSpeed / 100)
		} else {
			c.position -= int32(c.currentSpeed / 100)
		}
		c.regs.Write(register.MotorPosition, uint32(c.position))

	case Stopping:
		if c.currentSpeed > speedRampRate {
			c.currentSpeed -= speedRampRate
		} else {
			c.currentSpeed = 0
			c.state = Idle
			c.regs.ClearBits(register.MotorStatus, register.MotorStatusRunning)
		}
		c.regs.Write(register.MotorSpeed, c.currentSpeed)

	case Fault:
		// stay in fault until clear_fault

	case Recovery:
		c.state = Idle
	}

	return StatusOK
}

// InjectFault is diagnostic-only: it forces the fault state with the given
// code and sets the corresponding MOTOR_STATUS bit.
func (c *Controller) InjectFault(fault FaultCode) {
	c.faultCode = fault
	c.state = Fault

	switch fault {
	case FaultStall:
		c.regs.SetBits(register.MotorStatus, register.MotorStatusStall)
	case FaultOverheat:
		c.regs.SetBits(register.MotorStatus, register.MotorStatusOverheat)
	case FaultOvercurrent:
		c.regs.SetBits(register.MotorStatus, register.MotorStatusFault)
	}
}

// ClearFault transitions fault to recovery; no-op otherwise.
func (c *Controller) ClearFault() Status {
	if c.state != Fault {
		return StatusOK
	}
	c.faultCode = FaultNone
	c.state = Recovery
	c.regs.Write(register.MotorStatus, 0)
	return StatusOK
}

func (c *Controller) State() State         { return c.state }
func (c *Controller) FaultCode() FaultCode { return c.faultCode }
func (c *Controller) Speed() uint32        { return c.currentSpeed }
func (c *Controller) Position() int32      { return c.position }

// IsRunning reports whether the motor is starting or running.
func (c *Controller) IsRunning() bool {
	return c.state == Running || c.state == Starting
}
