package hostprobe

import "testing"

func TestTierString(t *testing.T) {
	cases := map[Tier]string{
		TierSSE:    "sse",
		TierAVX2:   "avx2",
		TierAVX512: "avx512",
	}
	for tier, want := range cases {
		if got := tier.String(); got != want {
			t.Errorf("Tier(%d).String() = %q, want %q", tier, got, want)
		}
	}
}

func TestInstructionSetTierStable(t *testing.T) {
	a := InstructionSetTier()
	b := InstructionSetTier()
	if a != b {
		t.Fatalf("InstructionSetTier is not stable across calls: %v then %v", a, b)
	}
	if a < TierSSE || a > TierAVX512 {
		t.Fatalf("InstructionSetTier returned out-of-range tier %v", a)
	}
}

func TestCPUCountNeverZero(t *testing.T) {
	if n := CPUCount(); n < 1 {
		t.Fatalf("CPUCount() = %d, want >= 1", n)
	}
}

func TestRAMSpeedMHzBenign(t *testing.T) {
	// No assertion on the value itself: absence of SMBIOS data is benign
	// and must not panic or error.
	_ = RAMSpeedMHz()
}
