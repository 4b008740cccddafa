// Command motordriverd is the driver process entry point. It takes no
// arguments: it loads an optional config file, starts the tick loop, runs
// a short demo command sequence, prints periodic status lines, and shuts
// down cleanly on SIGINT/SIGTERM.
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
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ember-systems/motordriver/config"
	"github.com/ember-systems/motordriver/driver"
	"github.com/ember-systems/motordriver/hexfmt"
	"github.com/ember-systems/motordriver/ipc"
	"github.com/ember-systems/motordriver/loglib"
)

const configPath = "motordriver.cfg"

func main() {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	logFile, err := os.Create(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot create log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	level := parseLevel(cfg.LogLevel)
	handler := loglib.NewHandler(logFile, &slog.HandlerOptions{Level: level}, false)
	slog.SetDefault(slog.New(handler))

	d := driver.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	go runDemo(d)

	ticks := 0
	statusTicker := time.NewTicker(time.Duration(cfg.TickMS) * 50 * time.Millisecond)
	defer statusTicker.Stop()

	for {
		select {
		case <-done:
			slog.Info("motor driver exited")
			return
		case <-statusTicker.C:
			ticks++
			st := d.Mailbox.Status()
			fmt.Printf("tick %d state=%d speed=%d pos=%d regs=%s\n",
				ticks, st.MotorState, st.MotorSpeed, st.MotorPosition,
				hexfmt.DumpRegisters(sliceWords(d.Regs.Words())))
		}
	}
}

// runDemo sends a motor start and a status request through the IPC
// mailbox, and enables the sensors with an out-of-range simulated
// temperature that the driver loop's next trigger+update clamps. It does
// not inject or clear a motor fault.
func runDemo(d *driver.Driver) {
	time.Sleep(50 * time.Millisecond)

	d.Mailbox.SendCommand(ipc.Command{Kind: ipc.MotorStart, Param1: 5000, Param2: 1})
	d.Mailbox.WaitResponse()

	time.Sleep(200 * time.Millisecond)

	d.Sensors.Enable()
	d.Sensors.SetSimulatedValue(2, 9999)

	d.Mailbox.SendCommand(ipc.Command{Kind: ipc.GetStatus})
	d.Mailbox.WaitResponse()
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func sliceWords(words [9]uint32) []uint32 {
	return words[:]
}
