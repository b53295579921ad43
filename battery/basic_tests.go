package battery

import "github.com/dramforge/dramdiag/kernel"

var basicPatterns = [...]byte{0x00, 0xFF, 0x0F, 0xF0, 0x55, 0xAA}

// BasicTests writes and verifies six fixed byte patterns across the whole
// buffer, once ascending and once descending per pattern.
func BasicTests[W any](ctx kernel.RunContext, ops Ops[W]) {
	for _, b := range basicPatterns {
		pattern := ops.Broadcast(b)
		setAllUp(ctx, ops, pattern)
		getAllUp(ctx, ops, pattern)
		setAllDown(ctx, ops, pattern)
		getAllDown(ctx, ops, pattern)
	}
}
