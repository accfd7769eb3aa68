package listener

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogging_WritesStructuredLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	l := NewLogging[string, int](log, "sessions")

	l.OnMiss("k")
	l.OnInsert("k", 42)
	l.OnUpdate("k", 42, 43)
	l.OnHit("k")
	l.OnEvict("k", 43)
	l.OnRemove("k")
	l.OnClear(7)

	out := buf.String()
	for _, want := range []string{
		"cache miss", "cache insert", "cache update", "cache hit",
		"cache evict", "cache remove", "cache clear",
		"cache=sessions", "key=k", "value=42", "old=42", "new=43", "count=7",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 7 {
		t.Fatalf("want 7 log lines, got %d:\n%s", got, out)
	}
}

func TestLogging_NilLoggerDefaults(t *testing.T) {
	t.Parallel()

	l := NewLogging[string, int](nil, "x")
	if l.log == nil {
		t.Fatal("nil logger must fall back to slog.Default")
	}
}
