// Package driver owns the register file, motor, sensors, and interrupt
// controller, and runs the periodic tick loop that advances them and
// drains the IPC mailbox. It is a run loop that selects over a done
// channel, a context, a shutdown-signal channel and a ticker channel; the
// IPC mailbox is polled for one command on each tick, serviced inline
// rather than dispatched to a background worker.
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
package driver

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ember-systems/motordriver/config"
	"github.com/ember-systems/motordriver/ipc"
	"github.com/ember-systems/motordriver/irq"
	"github.com/ember-systems/motordriver/motor"
	"github.com/ember-systems/motordriver/register"
	"github.com/ember-systems/motordriver/sensor"
)

// Driver wires the four core subsystems together and drives them on a
// fixed tick cadence.
type Driver struct {
	Regs    *register.File
	Motor   *motor.Controller
	Sensors *sensor.Array
	IRQ     *irq.Controller
	Mailbox *ipc.Channel

	cfg config.Config

	wg   sync.WaitGroup
	done chan struct{}
	tick uint64
}

// New builds a Driver from cfg, wiring the register file, motor
// controller, sensor array and interrupt controller together.
func New(cfg config.Config) *Driver {
	regs := register.New()
	m := motor.New(regs)
	s := sensor.New(regs)
	ic := irq.New(regs, m, s)

	d := &Driver{
		Regs:    regs,
		Motor:   m,
		Sensors: s,
		IRQ:     ic,
		Mailbox: ipc.New(),
		cfg:     cfg,
		done:    make(chan struct{}),
	}

	if cfg.IRQMotorFault {
		ic.Enable(irq.MotorFault)
	}
	if cfg.IRQMotorStall {
		ic.Enable(irq.MotorStall)
	}
	if cfg.IRQSensorReady {
		ic.Enable(irq.SensorReady)
	}
	if cfg.IRQSensorError {
		ic.Enable(irq.SensorError)
	}
	if cfg.IRQTimer {
		ic.Enable(irq.Timer)
	}

	return d
}

// Run starts the tick loop and blocks until ctx is cancelled, a shutdown
// signal arrives, or the IPC mailbox requests shutdown. It performs the
// drain sequence on exit: stop the motor, tick until it is no longer
// running, disable sensors, clean up the interrupt controller, and request
// shutdown on the IPC mailbox.
func (d *Driver) Run(ctx context.Context) {
	d.wg.Add(1)
	defer d.wg.Done()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	d.IRQ.SetupSignalHandler()

	interval := time.Duration(d.cfg.TickMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			d.drain()
			return
		case <-ctx.Done():
			d.drain()
			return
		case <-sigCh:
			d.drain()
			return
		case <-ticker.C:
			d.step()
			if d.Mailbox.IsShutdownRequested() {
				d.drain()
				return
			}
		}
	}
}

// Stop requests the loop to exit on its next iteration.
func (d *Driver) Stop() {
	select {
	case <-d.done:
	default:
		close(d.done)
	}
	d.wg.Wait()
}

func (d *Driver) step() {
	d.tick++

	d.Motor.Update()

	if d.tick%uint64(d.cfg.SensorTriggerEvery) == 0 {
		d.Sensors.Trigger()
	}
	d.Sensors.Update()

	if d.Motor.State() == motor.Fault {
		d.IRQ.Trigger(irq.MotorFault)
	}
	d.IRQ.ProcessPending()

	d.publishStatus()
	d.drainCommand()
}

func (d *Driver) publishStatus() {
	var sensors [4]int32
	d.Sensors.ReadAll(sensors[:])
	d.Mailbox.UpdateStatus(ipc.Status{
		MotorState:    uint32(d.Motor.State()),
		MotorSpeed:    d.Motor.Speed(),
		MotorPosition: d.Motor.Position(),
		SensorValues:  sensors,
		FaultCode:     uint32(d.Motor.FaultCode()),
	})
}

func (d *Driver) drainCommand() {
	cmd, ok := d.Mailbox.TryGetCommand()
	if !ok {
		return
	}
	d.Mailbox.SendResponse(d.handleCommand(cmd))
}

func (d *Driver) handleCommand(cmd ipc.Command) ipc.Response {
	switch cmd.Kind {
	case ipc.None:
		return ipc.Response{Status: ipc.OK}

	case ipc.MotorStart:
		dir := motor.CCW
		if cmd.Param2 != 0 {
			dir = motor.CW
		}
		if d.Motor.Start(cmd.Param1, dir) != motor.StatusOK {
			return ipc.Response{Status: ipc.ResponseError}
		}
		return ipc.Response{Status: ipc.OK}

	case ipc.MotorStop:
		d.Motor.Stop()
		return ipc.Response{Status: ipc.OK}

	case ipc.MotorSetSpeed:
		if d.Motor.SetSpeed(cmd.Param1) != motor.StatusOK {
			return ipc.Response{Status: ipc.ResponseError}
		}
		return ipc.Response{Status: ipc.OK}

	case ipc.SensorRead:
		var data [8]int32
		var vals [4]int32
		d.Sensors.ReadAll(vals[:])
		copy(data[:4], vals[:])
		return ipc.Response{Status: ipc.OK, Data: data}

	case ipc.GetStatus:
		var data [8]int32
		data[0] = int32(d.Motor.State())
		data[1] = int32(d.Motor.Speed())
		data[2] = d.Motor.Position()
		data[3] = int32(d.Motor.FaultCode())
		return ipc.Response{Status: ipc.OK, Data: data}

	case ipc.Reset:
		d.Motor.Reset()
		d.Sensors.ClearBuffer()
		return ipc.Response{Status: ipc.OK}

	default:
		return ipc.Response{Status: ipc.InvalidCommand}
	}
}

func (d *Driver) drain() {
	d.Motor.Stop()
	for d.Motor.IsRunning() {
		d.Motor.Update()
	}
	d.Sensors.Disable()
	d.IRQ.Cleanup()
	d.Mailbox.RequestShutdown()
	slog.Info("driver shut down")
}
