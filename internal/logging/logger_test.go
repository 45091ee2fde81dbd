package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// decodeEntries splits newline-delimited zerolog output into one map per entry.
func decodeEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("entry %q is not JSON: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestFieldConstructors(t *testing.T) {
	t.Parallel()
	errBusy := errors.New("device busy")

	cases := []struct {
		got     Field
		wantKey string
		want    any
	}{
		{String("handle", "3f2a"), "handle", "3f2a"},
		{Int("buf_len", 32), "buf_len", 32},
		{Int64("position", 92), "position", int64(92)},
		{Uint64("value", 7540113804746346429), "value", uint64(7540113804746346429)},
		{Float64("elapsed_ms", 0.25), "elapsed_ms", 0.25},
		{Bool("busy", true), "busy", true},
		{Err(errBusy), "error", errBusy},
	}
	for _, c := range cases {
		if c.got.Key != c.wantKey {
			t.Errorf("key = %q, want %q", c.got.Key, c.wantKey)
		}
		if c.got.Value != c.want {
			t.Errorf("%s = %v (%T), want %v (%T)", c.wantKey, c.got.Value, c.got.Value, c.want, c.want)
		}
	}
}

func TestNewLoggerTagsComponent(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "fibdev").Info("session opened", Int64("position", 0))

	entries := decodeEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e["component"] != "fibdev" {
		t.Errorf("component = %v", e["component"])
	}
	if e["level"] != "info" || e["message"] != "session opened" {
		t.Errorf("unexpected entry %v", e)
	}
	if e["position"] != float64(0) {
		t.Errorf("position = %v", e["position"])
	}
	if _, ok := e["time"]; !ok {
		t.Error("entry has no timestamp")
	}
}

func TestZerologAdapterEncodesFieldTypes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))

	adapter.Info("write",
		String("handle", "h1"),
		Int("buf_len", 8),
		Int64("elapsed_ns", 1500),
		Uint64("value", 144),
		Float64("ratio", 1.5),
		Bool("truncated", false),
		Err(errors.New("bad address")),
		Field{Key: "window", Value: struct{ Lo, Hi int }{0, 92}},
	)

	e := decodeEntries(t, &buf)[0]
	want := map[string]any{
		"handle":     "h1",
		"buf_len":    float64(8),
		"elapsed_ns": float64(1500),
		"value":      float64(144),
		"ratio":      1.5,
		"truncated":  false,
		"error":      "bad address",
	}
	for k, v := range want {
		if e[k] != v {
			t.Errorf("%s = %v (%T), want %v", k, e[k], e[k], v)
		}
	}
	window, ok := e["window"].(map[string]any)
	if !ok || window["Hi"] != float64(92) {
		t.Errorf("window = %v", e["window"])
	}
}

func TestZerologAdapterLevels(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	adapter.Debug("seek", Int64("position", 12))
	adapter.Error("acquire failed", errors.New("device busy"), String("remote", "127.0.0.1"))
	adapter.Printf("sweep %d..%d", 0, 92)
	adapter.Println("released", 2, "handles")

	entries := decodeEntries(t, &buf)
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	checks := []struct{ level, msg string }{
		{"debug", "seek"},
		{"error", "acquire failed"},
		{"info", "sweep 0..92"},
		{"info", "released 2 handles"},
	}
	for i, c := range checks {
		if entries[i]["level"] != c.level || entries[i]["message"] != c.msg {
			t.Errorf("entry %d = %v, want %s %q", i, entries[i], c.level, c.msg)
		}
	}
	if entries[1]["error"] != "device busy" || entries[1]["remote"] != "127.0.0.1" {
		t.Errorf("error entry lost fields: %v", entries[1])
	}
}

func TestNewLeveledLogger(t *testing.T) {
	t.Parallel()
	cases := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"DEBUG", true, true},
		{"info", false, true},
		{"", false, true},
		{"not-a-level", false, true},
		{"error", false, false},
	}
	for _, c := range cases {
		t.Run(c.level, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := NewLeveledLogger(&buf, "fibdev", c.level)
			l.Debug("dbg")
			l.Info("inf")
			out := buf.String()
			if got := strings.Contains(out, `"dbg"`); got != c.wantDebug {
				t.Errorf("debug emitted = %v, want %v", got, c.wantDebug)
			}
			if got := strings.Contains(out, `"inf"`); got != c.wantInfo {
				t.Errorf("info emitted = %v, want %v", got, c.wantInfo)
			}
		})
	}
}

func TestNewDefaultLogger(t *testing.T) {
	t.Parallel()
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))

	adapter.Info("session opened", String("handle", "h1"))
	adapter.Error("write failed", errors.New("bad address"), Int("buf_len", 0))
	adapter.Debug("seek")
	adapter.Printf("position %d", 90)
	adapter.Println("bound", 92)

	want := []string{
		"[INFO] session opened handle=h1",
		"[ERROR] write failed: bad address buf_len=0",
		"[DEBUG] seek",
		"position 90",
		"bound 92",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNopLogger(t *testing.T) {
	t.Parallel()
	var l Logger = NopLogger{}
	l.Info("ignored", Bool("busy", true))
	l.Error("ignored", errors.New("x"))
	l.Debug("ignored")
	l.Printf("%d", 1)
	l.Println("ignored")
}

func TestAdaptersSatisfyLogger(t *testing.T) {
	t.Parallel()
	var _ Logger = (*ZerologAdapter)(nil)
	var _ Logger = (*StdLoggerAdapter)(nil)
	var _ Logger = NopLogger{}
}
