package main

import (
	"testing"

	"github.com/dramforge/dramdiag/hostprobe"
)

func TestParseSizeSuffixes(t *testing.T) {
	cases := map[string]int{
		"1024": 1024,
		"1K":   1 << 10,
		"4M":   4 << 20,
		"1G":   1 << 30,
		"2g":   2 << 30,
	}
	for in, want := range cases {
		got, err := parseSize(in)
		if err != nil {
			t.Fatalf("parseSize(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("parseSize(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseSizeRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "0", "-1", "abc"} {
		if _, err := parseSize(in); err == nil {
			t.Fatalf("parseSize(%q) expected an error", in)
		}
	}
}

func TestParseTier(t *testing.T) {
	if tier, err := parseTier("avx2"); err != nil || tier != hostprobe.TierAVX2 {
		t.Fatalf("parseTier(avx2) = (%v, %v)", tier, err)
	}
	if tier, err := parseTier("avx512"); err != nil || tier != hostprobe.TierAVX512 {
		t.Fatalf("parseTier(avx512) = (%v, %v)", tier, err)
	}
	if _, err := parseTier("bogus"); err == nil {
		t.Fatal("parseTier(bogus) expected an error")
	}
}

func TestAlignSize(t *testing.T) {
	if got := alignSize(1000, 8); got != 1000-(1000%8) {
		t.Fatalf("alignSize(1000, 8) = %d, want %d", got, 1000-(1000%8))
	}
	if got := alignSize(1024, 4); got != 1024 {
		t.Fatalf("alignSize(1024, 4) = %d, want 1024", got)
	}
}
