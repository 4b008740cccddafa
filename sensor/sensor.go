// Package sensor implements the four-channel sensor array: per-channel
// range clamping, sampling state, and the SPSC sample ring.
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
package sensor

import "github.com/ember-systems/motordriver/register"

// Type identifies a channel's semantic meaning.
type Type int

const (
	Position Type = iota
	Velocity
	Temperature
	Current
)

// Count is the number of channels.
const Count = 4

// State is a channel's sampling lifecycle state.
type State int

const (
	Disabled State = iota
	Idle
	Sampling
	Error
)

type channel struct {
	typ         Type
	state       State
	value       int32
	min, max    int32
	sampleCount uint32
}

// Array owns the four channels and the shared sample ring.
type Array struct {
	regs       *register.File
	channels   [Count]channel
	buf        ring
	continuous bool
}

// New returns an Array wired to regs with the fixed per-channel ranges,
// all channels disabled and sensor registers cleared.
func New(regs *register.File) *Array {
	a := &Array{regs: regs}
	a.channels[0] = channel{typ: Position, min: -10000, max: 10000, state: Disabled}
	a.channels[1] = channel{typ: Velocity, min: 0, max: 10000, state: Disabled}
	a.channels[2] = channel{typ: Temperature, min: -40, max: 125, state: Disabled}
	a.channels[3] = channel{typ: Current, min: 0, max: 5000, state: Disabled}

	regs.Write(register.SensorCtrl, 0)
	regs.Write(register.SensorData, 0)
	regs.Write(register.SensorStatus, 0)
	return a
}

// Enable bulk-transitions all channels to idle and sets the enable/ready bits.
func (a *Array) Enable() {
	for i := range a.channels {
		a.channels[i].state = Idle
	}
	a.regs.SetBits(register.SensorCtrl, register.SensorCtrlEnable)
	a.regs.SetBits(register.SensorStatus, register.SensorStatusReady)
}

// Disable bulk-transitions all channels to disabled and clears the
// enable/ready bits.
func (a *Array) Disable() {
	for i := range a.channels {
		a.channels[i].state = Disabled
	}
	a.regs.ClearBits(register.SensorCtrl, register.SensorCtrlEnable)
	a.regs.ClearBits(register.SensorStatus, register.SensorStatusReady)
}

// Trigger fails if the array is not enabled; otherwise it sets the trigger
// bit and advances every idle channel to sampling.
func (a *Array) Trigger() int {
	if a.regs.Read(register.SensorCtrl)&register.SensorCtrlEnable == 0 {
		return -2
	}
	a.regs.SetBits(register.SensorCtrl, register.SensorCtrlTrigger)

	for i := range a.channels {
		if a.channels[i].state == Idle {
			a.channels[i].state = Sampling
			a.channels[i].sampleCount++
		}
	}
	return 0
}

// SetContinuous toggles continuous mode and its shadow register bit.
func (a *Array) SetContinuous(on bool) {
	a.continuous = on
	if on {
		a.regs.SetBits(register.SensorCtrl, register.SensorCtrlContinuous)
	} else {
		a.regs.ClearBits(register.SensorCtrl, register.SensorCtrlContinuous)
	}
}

// Read returns channel i's latest value, or 0 if i is out of range.
func (a *Array) Read(i int) int32 {
	if i < 0 || i >= Count {
		return 0
	}
	return a.channels[i].value
}

// ReadAll copies up to min(len(out), Count) channel values into out and
// returns how many were written.
func (a *Array) ReadAll(out []int32) int {
	n := len(out)
	if n > Count {
		n = Count
	}
	for i := 0; i < n; i++ {
		out[i] = a.channels[i].value
	}
	return n
}

// Update advances every sampling channel to idle, clamping its value to the
// channel's range. This is the only place clamping happens. In continuous
// mode the clamped value is pushed to the ring and, once ready, the array
// auto re-triggers.
func (a *Array) Update() {
	for i := range a.channels {
		c := &a.channels[i]
		if c.state != Sampling {
			continue
		}
		c.state = Idle
		if c.value < c.min {
			c.value = c.min
		}
		if c.value > c.max {
			c.value = c.max
		}
		if a.continuous {
			a.Push(c.value)
		}
	}

	a.regs.ClearBits(register.SensorCtrl, register.SensorCtrlTrigger)

	if a.continuous && a.IsReady() {
		a.Trigger()
	}
}

// SetSimulatedValue writes a channel's value directly, bypassing sampling
// and clamping. Clamping only takes effect after a trigger+update cycle.
func (a *Array) SetSimulatedValue(i int, v int32) {
	if i < 0 || i >= Count {
		return
	}
	a.channels[i].value = v
}

// State returns channel i's sampling state, or Error if i is out of range.
func (a *Array) State(i int) State {
	if i < 0 || i >= Count {
		return Error
	}
	return a.channels[i].state
}

// IsReady reports whether SENSOR_STATUS.ready is set.
func (a *Array) IsReady() bool {
	return a.regs.Read(register.SensorStatus)&register.SensorStatusReady != 0
}

// HasError reports whether SENSOR_STATUS.error is set.
func (a *Array) HasError() bool {
	return a.regs.Read(register.SensorStatus)&register.SensorStatusError != 0
}

// Push appends a value to the sample ring. It sets SENSOR_STATUS.overflow
// and returns false if the ring is full; the sample is dropped.
func (a *Array) Push(v int32) bool {
	if !a.buf.push(v) {
		a.regs.SetBits(register.SensorStatus, register.SensorStatusOverflow)
		return false
	}
	return true
}

// Pop removes and returns the oldest buffered value.
func (a *Array) Pop() (int32, bool) {
	return a.buf.pop()
}

// Count returns the number of buffered samples.
func (a *Array) Count() int {
	return a.buf.count()
}

// ClearBuffer resets the ring and clears the overflow bit.
func (a *Array) ClearBuffer() {
	a.buf.clear()
	a.regs.ClearBits(register.SensorStatus, register.SensorStatusOverflow)
}
