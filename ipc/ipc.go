// Package ipc implements the command/response mailbox that sits at the
// driver's external boundary: one command slot, one response slot, a
// status snapshot, and a shutdown flag, guarded by a mutex and a pair of
// condition variables.
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
package ipc

import "sync"

// CommandKind identifies the kind of command in the mailbox.
type CommandKind int

const (
	None CommandKind = iota
	MotorStart
	MotorStop
	MotorSetSpeed
	SensorRead
	GetStatus
	Reset
)

// ResponseStatus is the outcome reported back for a drained command.
type ResponseStatus int

const (
	OK ResponseStatus = iota
	ResponseError
	Busy
	InvalidCommand
)

// Command is a pending request: a kind plus two parameters.
type Command struct {
	Kind   CommandKind
	Param1 uint32
	Param2 uint32
}

// Response is a drained command's outcome: a status plus up to eight
// signed result words.
type Response struct {
	Status ResponseStatus
	Data   [8]int32
}

// Status is the periodically-published snapshot of driver state.
type Status struct {
	MotorState    uint32
	MotorSpeed    uint32
	MotorPosition int32
	SensorValues  [4]int32
	FaultCode     uint32
}

// Channel is the in-process mailbox. It collapses the original
// cross-process shared-memory mutex/condvar-pair layout to a single
// process's sync.Mutex/sync.Cond, since there is no second process here.
type Channel struct {
	mu        sync.Mutex
	cmdReady  *sync.Cond
	respReady *sync.Cond

	cmd        Command
	cmdPending bool

	resp      Response
	respPending bool

	status Status

	shutdown bool
}

// New returns an empty, open Channel.
func New() *Channel {
	c := &Channel{}
	c.cmdReady = sync.NewCond(&c.mu)
	c.respReady = sync.NewCond(&c.mu)
	return c
}

// SendCommand blocks until any previous command has been drained, then
// posts cmd and wakes the driver loop.
func (c *Channel) SendCommand(cmd Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.cmdPending && !c.shutdown {
		c.cmdReady.Wait()
	}
	if c.shutdown {
		return
	}
	c.cmd = cmd
	c.cmdPending = true
	c.cmdReady.Signal()
}

// WaitResponse blocks until a response is ready, then returns it and
// clears the ready flag.
func (c *Channel) WaitResponse() Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	for !c.respPending && !c.shutdown {
		c.respReady.Wait()
	}
	r := c.resp
	c.respPending = false
	return r
}

// GetCommand blocks until a command is pending or shutdown is requested.
// ok is false if shutdown was requested and no command is pending; a
// command posted before shutdown is still returned with ok true.
func (c *Channel) GetCommand() (cmd Command, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for !c.cmdPending && !c.shutdown {
		c.cmdReady.Wait()
	}
	if c.shutdown && !c.cmdPending {
		return Command{}, false
	}
	cmd = c.cmd
	return cmd, true
}

// TryGetCommand returns immediately: ok is false if no command is pending.
func (c *Channel) TryGetCommand() (cmd Command, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cmdPending {
		return Command{}, false
	}
	return c.cmd, true
}

// SendResponse posts resp, clears the pending command, and wakes any
// waiter blocked in WaitResponse/SendCommand.
func (c *Channel) SendResponse(resp Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resp = resp
	c.respPending = true
	c.cmdPending = false
	c.respReady.Broadcast()
	c.cmdReady.Broadcast()
}

// UpdateStatus publishes a fresh status snapshot under the mailbox lock.
func (c *Channel) UpdateStatus(s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = s
}

// Status returns the last published status snapshot.
func (c *Channel) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// IsShutdownRequested reports whether shutdown has been requested.
func (c *Channel) IsShutdownRequested() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shutdown
}

// RequestShutdown sets the shutdown flag and wakes every waiter.
func (c *Channel) RequestShutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdown = true
	c.cmdReady.Broadcast()
	c.respReady.Broadcast()
}
