// Package config reads the driver's runtime configuration file: a small
// line-oriented "key = value" format with "#" comments, stripped and
// tokenized the way the rest of this codebase's config readers do,
// trimmed down to this driver's flat key set since there is exactly one
// motor and one fixed sensor array to configure, not a bus of pluggable
// device models.
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
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config holds the driver's tunable runtime parameters.
type Config struct {
	TickMS             int
	LogFile            string
	LogLevel           string
	SensorTriggerEvery int
	IRQMotorFault      bool
	IRQMotorStall      bool
	IRQSensorReady     bool
	IRQSensorError     bool
	IRQTimer           bool
}

// Default returns the built-in configuration used when no file is present.
func Default() Config {
	return Config{
		TickMS:             10,
		LogFile:            "motordriver.log",
		LogLevel:           "info",
		SensorTriggerEvery: 10,
		IRQMotorFault:      true,
		IRQMotorStall:      true,
		IRQSensorReady:     true,
		IRQSensorError:     false,
		IRQTimer:           false,
	}
}

// Load reads path, applying key=value lines over the defaults. A missing
// file is not an error: Load returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	if err := apply(&cfg, f); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func apply(cfg *Config, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("config line %d: missing '='", lineNumber)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if err := setField(cfg, key, value); err != nil {
			return fmt.Errorf("config line %d: %w", lineNumber, err)
		}
	}
	return scanner.Err()
}

func setField(cfg *Config, key, value string) error {
	switch key {
	case "tick_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid tick_ms: %w", err)
		}
		cfg.TickMS = n
	case "log_file":
		cfg.LogFile = value
	case "log_level":
		cfg.LogLevel = value
	case "sensor_trigger_every":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid sensor_trigger_every: %w", err)
		}
		cfg.SensorTriggerEvery = n
	case "irq.motor_fault":
		cfg.IRQMotorFault = onOff(value)
	case "irq.motor_stall":
		cfg.IRQMotorStall = onOff(value)
	case "irq.sensor_ready":
		cfg.IRQSensorReady = onOff(value)
	case "irq.sensor_error":
		cfg.IRQSensorError = onOff(value)
	case "irq.timer":
		cfg.IRQTimer = onOff(value)
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func onOff(value string) bool {
	return strings.EqualFold(value, "on") || strings.EqualFold(value, "true")
}
