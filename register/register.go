// Package register implements the flat word-addressable register file
// shared by the motor, sensor and interrupt subsystems.
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
package register

// Named offsets into the register file, byte-aligned multiples of 4.
const (
	MotorCtrl     uint32 = 0x00
	MotorStatus   uint32 = 0x04
	MotorSpeed    uint32 = 0x08
	MotorPosition uint32 = 0x0C
	SensorCtrl    uint32 = 0x10
	SensorData    uint32 = 0x14
	SensorStatus  uint32 = 0x18
	IRQStatus     uint32 = 0x1C
	IRQEnable     uint32 = 0x20
)

// MOTOR_CTRL bits.
const (
	MotorCtrlEnable uint32 = 1 << 0
	MotorCtrlDirCW  uint32 = 1 << 1
	MotorCtrlBrake  uint32 = 1 << 2
	MotorCtrlReset  uint32 = 1 << 7
)

// MOTOR_STATUS bits.
const (
	MotorStatusRunning  uint32 = 1 << 0
	MotorStatusFault    uint32 = 1 << 1
	MotorStatusStall    uint32 = 1 << 2
	MotorStatusOverheat uint32 = 1 << 3
)

// SENSOR_CTRL bits.
const (
	SensorCtrlEnable     uint32 = 1 << 0
	SensorCtrlContinuous uint32 = 1 << 1
	SensorCtrlTrigger    uint32 = 1 << 2
)

// SENSOR_STATUS bits.
const (
	SensorStatusReady    uint32 = 1 << 0
	SensorStatusOverflow uint32 = 1 << 1
	SensorStatusError    uint32 = 1 << 2
)

// ReadFault is returned by Read for an out-of-range offset.
const ReadFault uint32 = 0xFFFFFFFF

// Size is the register file's byte size: 9 words.
const Size uint32 = 9 * 4

// File is a flat word-addressable memory window. It is not safe for
// concurrent use; callers serialize access through the driver loop.
type File struct {
	words [Size / 4]uint32
}

// New returns a zeroed register file.
func New() *File {
	return &File{}
}

func inRange(offset uint32) bool {
	return offset < Size
}

// Read returns the word at offset, or ReadFault if offset is out of range.
func (f *File) Read(offset uint32) uint32 {
	if !inRange(offset) {
		return ReadFault
	}
	return f.words[offset/4]
}

// Words returns a copy of the 9-word backing store, for status dumps.
func (f *File) Words() [Size / 4]uint32 {
	return f.words
}

// Write stores value at offset. Out-of-range offsets are a silent no-op.
func (f *File) Write(offset, value uint32) {
	if !inRange(offset) {
		return
	}
	f.words[offset/4] = value
}

// SetBits performs a read-modify-write, OR-ing mask into the word at offset.
func (f *File) SetBits(offset, mask uint32) {
	if !inRange(offset) {
		return
	}
	f.words[offset/4] |= mask
}

// ClearBits performs a read-modify-write, clearing mask from the word at offset.
func (f *File) ClearBits(offset, mask uint32) {
	if !inRange(offset) {
		return
	}
	f.words[offset/4] &^= mask
}
