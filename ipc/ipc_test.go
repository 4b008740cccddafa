package ipc

import "testing"

func TestSendCommandThenGetCommand(t *testing.T) {
	c := New()
	done := make(chan Command, 1)
	go func() {
		cmd, ok := c.GetCommand()
		if !ok {
			t.Error("expected ok=true")
		}
		done <- cmd
	}()

	c.SendCommand(Command{Kind: MotorStart, Param1: 5000})
	got := <-done
	if got.Kind != MotorStart || got.Param1 != 5000 {
		t.Errorf("got %+v expected MotorStart/5000", got)
	}
}

func TestSendResponseWakesWaitResponse(t *testing.T) {
	c := New()
	done := make(chan Response, 1)
	go func() {
		done <- c.WaitResponse()
	}()

	c.SendResponse(Response{Status: OK, Data: [8]int32{1, 2, 3}})
	got := <-done
	if got.Status != OK || got.Data[1] != 2 {
		t.Errorf("got %+v expected OK/{1,2,3,...}", got)
	}
}

func TestTryGetCommandNonBlocking(t *testing.T) {
	c := New()
	if _, ok := c.TryGetCommand(); ok {
		t.Error("expected no pending command")
	}
	c.SendCommand(Command{Kind: Reset})
	cmd, ok := c.TryGetCommand()
	if !ok || cmd.Kind != Reset {
		t.Errorf("got %+v/%v expected Reset/true", cmd, ok)
	}
}

func TestStatusRoundTrip(t *testing.T) {
	c := New()
	want := Status{MotorState: 1, MotorSpeed: 500, MotorPosition: -3}
	c.UpdateStatus(want)
	if got := c.Status(); got != want {
		t.Errorf("got %+v expected %+v", got, want)
	}
}

func TestRequestShutdownWakesWaiters(t *testing.T) {
	c := New()
	done := make(chan bool, 1)
	go func() {
		_, ok := c.GetCommand()
		done <- ok
	}()

	c.RequestShutdown()
	if ok := <-done; ok {
		t.Error("expected ok=false after shutdown with no pending command")
	}
	if !c.IsShutdownRequested() {
		t.Error("expected shutdown requested")
	}
}
