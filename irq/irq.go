// Package irq implements the interrupt controller: enable/pending masks,
// a handler table with opaque context, and the host-signal bridge latch.
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
package irq

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/ember-systems/motordriver/motor"
	"github.com/ember-systems/motordriver/register"
	"github.com/ember-systems/motordriver/sensor"
)

// Source identifies one of the five interrupt sources.
type Source int

const (
	MotorFault Source = iota
	MotorStall
	SensorReady
	SensorError
	Timer
	sourceCount
)

// Handler is invoked with the source that fired and its registered context.
type Handler func(source Source, ctx any)

// Controller owns the enable/pending masks, the handler table, and the
// signal-bridge latch. It holds non-owning references to the register
// file, motor, and sensors.
type Controller struct {
	regs    *register.File
	motor   *motor.Controller
	sensors *sensor.Array

	mu       sync.Mutex
	handlers [sourceCount]Handler
	ctxs     [sourceCount]any

	pending uint32 // atomic
	enabled uint32 // atomic

	signalReceived int32 // atomic, set by the bridge goroutine
	sigCh          chan os.Signal
	sigDone        chan struct{}
}

var (
	activeMu sync.Mutex
	active   *Controller
)

// New wires ic to regs/motorCtl/sensors, zeroes the IRQ registers, and
// installs ic as the process-wide signal-bridge target.
func New(regs *register.File, motorCtl *motor.Controller, sensors *sensor.Array) *Controller {
	ic := &Controller{regs: regs, motor: motorCtl, sensors: sensors}
	regs.Write(register.IRQStatus, 0)
	regs.Write(register.IRQEnable, 0)

	activeMu.Lock()
	active = ic
	activeMu.Unlock()

	return ic
}

// RegisterHandler installs a handler and opaque context for source.
func (ic *Controller) RegisterHandler(source Source, h Handler, ctx any) {
	if source < 0 || source >= sourceCount {
		return
	}
	ic.mu.Lock()
	ic.handlers[source] = h
	ic.ctxs[source] = ctx
	ic.mu.Unlock()
}

// UnregisterHandler clears source's handler and context.
func (ic *Controller) UnregisterHandler(source Source) {
	if source < 0 || source >= sourceCount {
		return
	}
	ic.mu.Lock()
	ic.handlers[source] = nil
	ic.ctxs[source] = nil
	ic.mu.Unlock()
}

// Enable marks source enabled, mirroring IRQ_ENABLE.
func (ic *Controller) Enable(source Source) {
	if source < 0 || source >= sourceCount {
		return
	}
	bit := uint32(1) << uint(source)
	atomicOr(&ic.enabled, bit)
	ic.regs.SetBits(register.IRQEnable, bit)
}

// Disable marks source disabled, mirroring IRQ_ENABLE.
func (ic *Controller) Disable(source Source) {
	if source < 0 || source >= sourceCount {
		return
	}
	bit := uint32(1) << uint(source)
	atomicAndNot(&ic.enabled, bit)
	ic.regs.ClearBits(register.IRQEnable, bit)
}

// EnableAll enables every source.
func (ic *Controller) EnableAll() {
	mask := uint32(1)<<uint(sourceCount) - 1
	atomic.StoreUint32(&ic.enabled, mask)
	ic.regs.Write(register.IRQEnable, mask)
}

// DisableAll disables every source.
func (ic *Controller) DisableAll() {
	atomic.StoreUint32(&ic.enabled, 0)
	ic.regs.Write(register.IRQEnable, 0)
}

// Trigger sets the pending bit for source only if it is currently enabled;
// triggers against disabled sources are silently dropped.
func (ic *Controller) Trigger(source Source) {
	if source < 0 || source >= sourceCount {
		return
	}
	bit := uint32(1) << uint(source)
	if atomic.LoadUint32(&ic.enabled)&bit != 0 {
		atomicOr(&ic.pending, bit)
		ic.regs.SetBits(register.IRQStatus, bit)
	}
}

// IsPending reports whether source's pending bit is set.
func (ic *Controller) IsPending(source Source) bool {
	if source < 0 || source >= sourceCount {
		return false
	}
	return atomic.LoadUint32(&ic.pending)&(uint32(1)<<uint(source)) != 0
}

// PendingMask returns the full pending bit-vector.
func (ic *Controller) PendingMask() uint32 {
	return atomic.LoadUint32(&ic.pending)
}

// Clear clears source's pending bit in both the mask and IRQ_STATUS.
func (ic *Controller) Clear(source Source) {
	if source < 0 || source >= sourceCount {
		return
	}
	bit := uint32(1) << uint(source)
	atomicAndNot(&ic.pending, bit)
	ic.regs.ClearBits(register.IRQStatus, bit)
}

// ProcessPending is the drain entry point: if the signal-received latch is
// set, it clears it and triggers the timer source. It then invokes, in
// ascending source order, the handler registered for every pending source,
// and finally clears the entire pending mask and IRQ_STATUS, whether or
// not a handler was registered for a given bit. It returns the number of
// handlers invoked.
func (ic *Controller) ProcessPending() int {
	if atomic.SwapInt32(&ic.signalReceived, 0) != 0 {
		ic.Trigger(Timer)
	}

	processed := 0
	pending := atomic.LoadUint32(&ic.pending)
	for i := Source(0); i < sourceCount; i++ {
		bit := uint32(1) << uint(i)
		if pending&bit == 0 {
			continue
		}
		ic.mu.Lock()
		h, ctx := ic.handlers[i], ic.ctxs[i]
		ic.mu.Unlock()
		if h != nil {
			h(i, ctx)
			processed++
		}
	}

	atomic.StoreUint32(&ic.pending, 0)
	ic.regs.Write(register.IRQStatus, 0)
	return processed
}

// SetupSignalHandler installs the bridge: SIGUSR1 maps to motor-fault,
// SIGUSR2 maps to sensor-ready. Both set the signal-received latch and OR
// their mapped bit directly into the pending mask, bypassing the enabled
// gate. This is the asynchronous path, distinct from Trigger's synchronous
// gate, matching a real signal handler's minimal-work contract.
func (ic *Controller) SetupSignalHandler() {
	ic.sigCh = make(chan os.Signal, 2)
	ic.sigDone = make(chan struct{})
	signal.Notify(ic.sigCh, syscall.SIGUSR1, syscall.SIGUSR2)

	go func() {
		for {
			select {
			case sig, ok := <-ic.sigCh:
				if !ok {
					return
				}
				atomic.StoreInt32(&ic.signalReceived, 1)
				switch sig {
				case syscall.SIGUSR1:
					atomicOr(&ic.pending, uint32(1)<<uint(MotorFault))
				case syscall.SIGUSR2:
					atomicOr(&ic.pending, uint32(1)<<uint(SensorReady))
				}
			case <-ic.sigDone:
				return
			}
		}
	}()
}

// Cleanup disables all sources, detaches the process-wide pointer, and
// restores default signal dispositions.
func (ic *Controller) Cleanup() {
	ic.DisableAll()

	activeMu.Lock()
	if active == ic {
		active = nil
	}
	activeMu.Unlock()

	if ic.sigCh != nil {
		signal.Stop(ic.sigCh)
		close(ic.sigDone)
	}
}

func atomicOr(addr *uint32, bit uint32) {
	for {
		old := atomic.LoadUint32(addr)
		if atomic.CompareAndSwapUint32(addr, old, old|bit) {
			return
		}
	}
}

func atomicAndNot(addr *uint32, bit uint32) {
	for {
		old := atomic.LoadUint32(addr)
		if atomic.CompareAndSwapUint32(addr, old, old&^bit) {
			return
		}
	}
}
