package console

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dramforge/dramdiag/battery"
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/simd"
)

// LuaPatternFunc is a compiled Lua "pattern(i)" function: given a 0-based
// slot index, it returns the byte value that slot's word should be
// broadcast-filled with. This is the console's equivalent of the
// original's compile-time patterns[] arrays — an operator can describe a
// one-off pattern sweep without rebuilding the engine.
type LuaPatternFunc struct {
	state *lua.LState
	fn    *lua.LFunction
}

// CompilePatternScript loads a Lua script that must define a global
// function "pattern(i)" returning an integer 0-255.
func CompilePatternScript(src string) (*LuaPatternFunc, error) {
	state := lua.NewState()
	if err := state.DoString(src); err != nil {
		state.Close()
		return nil, fmt.Errorf("console: lua script error: %w", err)
	}
	fn, ok := state.GetGlobal("pattern").(*lua.LFunction)
	if !ok {
		state.Close()
		return nil, fmt.Errorf("console: lua script must define function pattern(i)")
	}
	return &LuaPatternFunc{state: state, fn: fn}, nil
}

// Close releases the Lua interpreter.
func (p *LuaPatternFunc) Close() { p.state.Close() }

// Byte evaluates pattern(i) and returns the resulting byte.
func (p *LuaPatternFunc) Byte(i int) (byte, error) {
	p.state.Push(p.fn)
	p.state.Push(lua.LNumber(i))
	if err := p.state.PCall(1, 1, nil); err != nil {
		return 0, fmt.Errorf("console: lua pattern(%d): %w", i, err)
	}
	ret := p.state.Get(-1)
	p.state.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("console: lua pattern(%d) did not return a number", i)
	}
	return byte(int(n) & 0xFF), nil
}

// RunScripted writes and verifies a single pattern, drawn by calling the
// Lua function once, across the whole buffer — a lightweight ad hoc
// counterpart to battery.BasicTests for an operator-supplied pattern.
func RunScripted[W any](ctx kernel.RunContext, ops battery.Ops[W], script *LuaPatternFunc, slot int) error {
	b, err := script.Byte(slot)
	if err != nil {
		return err
	}
	pattern := ops.Broadcast(b)
	stripeSize := ctx.StripeSize()
	kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, stripeSize)
		ops.Store(ctx.Buffer, idx, pattern)
	})
	simd.SFence()
	kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, stripeSize)
		ops.Equal(ctx.Errors, ctx.Buffer, idx, pattern)
	})
	return nil
}
