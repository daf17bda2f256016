package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "info", Service: "backoffice", Output: &buf})

	l.Debug().Msg("dropped")
	l.Info().Msg("kept")

	var event map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event); err != nil {
		t.Fatalf("expected exactly one JSON event, got %q: %v", buf.String(), err)
	}
	if event["service"] != "backoffice" || event["message"] != "kept" {
		t.Errorf("unexpected event %v", event)
	}
}

func TestInit_UsesNanosecondTimestamps(t *testing.T) {
	var buf bytes.Buffer
	l := Init(Options{Output: &buf})
	l.Info().Msg("started")

	if zerolog.TimeFieldFormat != time.RFC3339Nano {
		t.Errorf("TimeFieldFormat = %q", zerolog.TimeFieldFormat)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"message":"started"`)) {
		t.Errorf("unexpected output %q", buf.String())
	}
}
