package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_SplitsStreamsByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	log := New(InfoLevel, &out, &errOut)

	log.Debugw("hidden")
	log.Infow("battery level", "percent", 42)
	log.Errorw("doorbell not found")
	_ = log.Sync()

	if strings.Contains(out.String(), "hidden") {
		t.Fatalf("debug record leaked at info level: %q", out.String())
	}
	if !strings.Contains(out.String(), "battery level") || !strings.Contains(out.String(), "percent") {
		t.Fatalf("stdout missing info record: %q", out.String())
	}
	if strings.Contains(out.String(), "doorbell not found") {
		t.Fatalf("error record written to stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "ERROR") || !strings.Contains(errOut.String(), "doorbell not found") {
		t.Fatalf("stderr missing error record: %q", errOut.String())
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]string{
		" DEBUG ": DebugLevel,
		"Warning": WarnLevel,
		"warn":    WarnLevel,
		"":        "",
	}
	for in, want := range cases {
		if got := normalizeLevel(in); got != want {
			t.Errorf("normalizeLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
