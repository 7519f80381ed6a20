package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON {
		t.Fatalf("expected json format")
	}
	if ParseFormat("anything") != FormatText {
		t.Fatalf("expected text format by default")
	}
}

func TestZapLogger_WithMergesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZap(zap.New(core)).With(map[string]any{"pet_id": "pet-1"})

	l.Warn("dose rejected", map[string]any{
		"kind": "DOSE_NOT_FOUND",
		"err":  errors.New("boom"),
		"":     "ignored",
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel || e.Message != "dose rejected" {
		t.Fatalf("unexpected entry %+v", e)
	}

	ctx := e.ContextMap()
	if ctx["pet_id"] != "pet-1" {
		t.Fatalf("expected pet_id from With, got %#v", ctx["pet_id"])
	}
	if ctx["kind"] != "DOSE_NOT_FOUND" {
		t.Fatalf("expected kind field, got %#v", ctx["kind"])
	}
	if ctx["err"] != "boom" {
		t.Fatalf("expected err field, got %#v", ctx["err"])
	}
	if _, ok := ctx[""]; ok {
		t.Fatalf("empty keys must be dropped")
	}
}

func TestZapLogger_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewZap(zap.New(core))

	l.Debug("hidden", nil)
	l.Info("shown", nil)

	if logs.Len() != 1 {
		t.Fatalf("expected only info entry, got %d", logs.Len())
	}
}
