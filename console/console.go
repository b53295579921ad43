// Package console implements the interactive operator REPL: a raw-mode
// terminal line reader (grounded on terminal_host.go's
// term.MakeRaw/syscall.SetNonblock pattern, generalized here from a
// byte-at-a-time MMIO feed to line-buffered command input), a ":copy"
// command that writes the last report to the clipboard (grounded on
// video_backend_ebiten.go's clipboard.Init use), an
// audible fault-alert tone (grounded on audio_backend_oto.go's
// oto.Context/Player setup), and a custom pattern scripting command
// backed by gopher-lua.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.design/x/clipboard"
	"golang.org/x/term"

	"github.com/dramforge/dramdiag/battery"
	"github.com/dramforge/dramdiag/dispatch"
	"github.com/dramforge/dramdiag/hostprobe"
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/rng"
)

// REPL drives the operator console: a line at a time, dispatched to one
// of a small fixed set of commands.
type REPL struct {
	Ctx  kernel.RunContext
	Tier hostprobe.Tier
	Src  *rng.Source

	In  io.Reader
	Out io.Writer

	clipboardOnce sync.Once
	clipboardOK   bool

	alert      *alertTone
	lastReport strings.Builder
}

// NewREPL builds a console bound to an already-allocated test buffer.
func NewREPL(ctx kernel.RunContext, tier hostprobe.Tier) *REPL {
	return &REPL{
		Ctx:   ctx,
		Tier:  tier,
		Src:   rng.New(),
		In:    os.Stdin,
		Out:   os.Stdout,
		alert: newAlertTone(),
	}
}

// Run puts the terminal into raw mode (when In is a real terminal) and
// serves commands until ctx is cancelled or the input stream is closed.
func (r *REPL) Run(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	var restore func()
	if f, ok := r.In.(*os.File); ok && f.Fd() == uintptr(fd) && term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("console: failed to set raw mode: %w", err)
		}
		restore = func() { _ = term.Restore(fd, oldState) }
		defer restore()
	}

	lines := r.readLines(ctx)
	fmt.Fprintln(r.Out, "dramdiag console — type :help")
	for {
		fmt.Fprint(r.Out, "> ")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if r.dispatch(strings.TrimSpace(line)) {
				return nil
			}
		}
	}
}

// readLines assembles raw bytes into CRLF/LF-terminated lines the same
// way TerminalMMIO's line mode does, translating the raw mode's CR and
// DEL bytes the way terminal_host.go's reader loop does.
func (r *REPL) readLines(ctx context.Context) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		reader := bufio.NewReader(r.In)
		var cur []byte
		for {
			b, err := reader.ReadByte()
			if err != nil {
				return
			}
			switch {
			case b == '\r' || b == '\n':
				select {
				case out <- string(cur):
				case <-ctx.Done():
					return
				}
				cur = cur[:0]
			case b == 0x7F || b == 0x08:
				if len(cur) > 0 {
					cur = cur[:len(cur)-1]
				}
			default:
				cur = append(cur, b)
			}
		}
	}()
	return out
}

// dispatch runs one command line and reports whether the REPL should
// exit.
func (r *REPL) dispatch(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case ":help":
		fmt.Fprintln(r.Out, ":run <name>|all   run one or all battery tests")
		fmt.Fprintln(r.Out, ":report           show the last run's error total")
		fmt.Fprintln(r.Out, ":copy             copy the last report to the clipboard")
		fmt.Fprintln(r.Out, ":script <path>    run a one-off Lua pattern(i) sweep")
		fmt.Fprintln(r.Out, ":quit             exit the console")
	case ":quit", ":exit":
		return true
	case ":run":
		r.cmdRun(fields[1:])
	case ":report":
		fmt.Fprint(r.Out, r.lastReport.String())
	case ":copy":
		r.cmdCopy()
	case ":script":
		r.cmdScript(fields[1:])
	default:
		fmt.Fprintf(r.Out, "unknown command %q — try :help\n", fields[0])
	}
	return false
}

func (r *REPL) cmdRun(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.Out, "usage: :run <name>|all")
		return
	}
	table, err := dispatch.For(r.Tier)
	if err != nil {
		fmt.Fprintf(r.Out, "error: %v\n", err)
		return
	}

	before := r.Ctx.Errors.Total()
	run := func(name string) {
		test, ok := table[name]
		if !ok {
			fmt.Fprintf(r.Out, "no such test %q\n", name)
			return
		}
		if err := test(r.Ctx, r.Src); err != nil {
			fmt.Fprintf(r.Out, "%s: error: %v\n", name, err)
		}
	}
	if args[0] == "all" {
		for _, name := range dispatch.Names {
			run(name)
		}
	} else {
		run(args[0])
	}

	after := r.Ctx.Errors.Total()
	r.lastReport.Reset()
	fmt.Fprintf(&r.lastReport, "errors this run: %d (total %d)\n", after-before, after)
	fmt.Fprint(r.Out, r.lastReport.String())

	if after > before {
		if r.alert == nil {
			r.alert = newAlertTone()
		}
		if err := r.alert.Play(); err != nil {
			fmt.Fprintf(r.Out, "alert tone unavailable: %v\n", err)
		}
	}
}

// cmdScript compiles a Lua "pattern(i)" script and runs a single
// RunScripted sweep with slot 0 (or the optional second argument), tied
// to whichever SIMD tier the console was started against.
func (r *REPL) cmdScript(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.Out, "usage: :script <path.lua> [slot]")
		return
	}
	slot := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(r.Out, "bad slot %q: %v\n", args[1], err)
			return
		}
		slot = n
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(r.Out, "error reading %s: %v\n", args[0], err)
		return
	}
	script, err := CompilePatternScript(string(src))
	if err != nil {
		fmt.Fprintf(r.Out, "%v\n", err)
		return
	}
	defer script.Close()

	before := r.Ctx.Errors.Total()
	var runErr error
	switch r.Tier {
	case hostprobe.TierAVX512:
		runErr = RunScripted(r.Ctx, battery.Ops64, script, slot)
	default:
		runErr = RunScripted(r.Ctx, battery.Ops32, script, slot)
	}
	if runErr != nil {
		fmt.Fprintf(r.Out, "script run failed: %v\n", runErr)
		return
	}

	after := r.Ctx.Errors.Total()
	r.lastReport.Reset()
	fmt.Fprintf(&r.lastReport, "errors this run: %d (total %d)\n", after-before, after)
	fmt.Fprint(r.Out, r.lastReport.String())
}

func (r *REPL) cmdCopy() {
	r.clipboardOnce.Do(func() {
		r.clipboardOK = clipboard.Init() == nil
	})
	if !r.clipboardOK {
		fmt.Fprintln(r.Out, "clipboard unavailable on this host")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(r.lastReport.String()))
	fmt.Fprintln(r.Out, "report copied to clipboard")
}
