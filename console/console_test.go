package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unsafe"

	"github.com/dramforge/dramdiag/hostprobe"
	"github.com/dramforge/dramdiag/kernel"
)

// alignedBuffer returns a size-byte slice 64-byte aligned, so a REPL test
// run exercises the real amd64 SIMD path rather than only the portable
// fallback.
func alignedBuffer(size int) []byte {
	const align = 64
	raw := make([]byte, size+align)
	off := (-uintptr(unsafe.Pointer(&raw[0]))) & (align - 1)
	return raw[off : off+uintptr(size) : off+uintptr(size)]
}

func newTestREPL(t *testing.T, in string) (*REPL, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := &REPL{
		Ctx: kernel.RunContext{
			Buffer:  alignedBuffer(1024),
			Workers: 2,
			Errors:  kernel.NewErrorCounter(),
		},
		Tier: hostprobe.TierAVX2,
		In:   strings.NewReader(in),
		Out:  &out,
	}
	r.Ctx.Errors.Output = &out
	return r, &out
}

func TestDispatchRunAndReport(t *testing.T) {
	r, out := newTestREPL(t, "")
	if quit := r.dispatch(":run basic_tests"); quit {
		t.Fatal(":run must not quit the REPL")
	}
	if !strings.Contains(out.String(), "errors this run: 0") {
		t.Fatalf("output = %q, want a zero-error report", out.String())
	}
	out.Reset()
	r.dispatch(":report")
	if !strings.Contains(out.String(), "errors this run") {
		t.Fatalf("report output = %q, want the last run summary", out.String())
	}
}

func TestDispatchUnknownTest(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.dispatch(":run nonexistent")
	if !strings.Contains(out.String(), "no such test") {
		t.Fatalf("output = %q, want a no-such-test message", out.String())
	}
}

func TestDispatchQuit(t *testing.T) {
	r, _ := newTestREPL(t, "")
	if quit := r.dispatch(":quit"); !quit {
		t.Fatal(":quit must signal the REPL to exit")
	}
}

func TestDispatchScript(t *testing.T) {
	r, out := newTestREPL(t, "")
	path := filepath.Join(t.TempDir(), "pattern.lua")
	if err := os.WriteFile(path, []byte("function pattern(i) return 0x5A end"), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	r.dispatch(":script " + path)
	if !strings.Contains(out.String(), "errors this run: 0") {
		t.Fatalf("output = %q, want a zero-error report", out.String())
	}
}

func TestDispatchScriptMissingFile(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.dispatch(":script /nonexistent/path.lua")
	if !strings.Contains(out.String(), "error reading") {
		t.Fatalf("output = %q, want a file-read error", out.String())
	}
}

func TestRunServesUntilInputCloses(t *testing.T) {
	r, out := newTestREPL(t, ":run basic_tests\n:quit\n")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "errors this run") {
		t.Fatalf("Run output = %q, want the basic_tests report", out.String())
	}
}
