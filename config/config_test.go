package config

import (
	"strings"
	"testing"
)

func TestDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load("/nonexistent/path/to/motordriver.cfg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Errorf("got %+v expected defaults %+v", cfg, want)
	}
}

func TestApplyOverridesDefaults(t *testing.T) {
	src := strings.NewReader(`
# comment line
tick_ms = 20
log_level = debug
irq.sensor_error = on
`)
	cfg := Default()
	if err := apply(&cfg, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TickMS != 20 {
		t.Errorf("got tick_ms %d expected 20", cfg.TickMS)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("got log_level %q expected debug", cfg.LogLevel)
	}
	if !cfg.IRQSensorError {
		t.Errorf("got irq.sensor_error false expected true")
	}
	if cfg.IRQMotorFault != true {
		t.Errorf("got irq.motor_fault %v expected default true", cfg.IRQMotorFault)
	}
}

func TestUnknownKeyRejected(t *testing.T) {
	src := strings.NewReader("bogus_key = 1\n")
	cfg := Default()
	if err := apply(&cfg, src); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestMissingEqualsRejected(t *testing.T) {
	src := strings.NewReader("tick_ms 20\n")
	cfg := Default()
	if err := apply(&cfg, src); err == nil {
		t.Error("expected error for missing '='")
	}
}
