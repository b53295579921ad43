package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogAVX2(t *testing.T) {
	log := "errors detected at offset 0x0000000000001000\nerrors detected at offset 0x0000000000002000\n"
	s, err := ParseLog(strings.NewReader(log))
	if err != nil {
		t.Fatalf("ParseLog error: %v", err)
	}
	if s.AVX2Events != 2 || s.TotalErrors != 2 {
		t.Fatalf("AVX2Events=%d TotalErrors=%d, want 2/2", s.AVX2Events, s.TotalErrors)
	}
	if len(s.UniqueOffsets) != 2 {
		t.Fatalf("UniqueOffsets = %d, want 2", len(s.UniqueOffsets))
	}
}

func TestParseLogAVX512(t *testing.T) {
	log := "3 errors detected at offset 0x0000000000004000 [error mask: 0x0000000000000007]\n"
	s, err := ParseLog(strings.NewReader(log))
	if err != nil {
		t.Fatalf("ParseLog error: %v", err)
	}
	if s.AVX512Events != 1 || s.TotalErrors != 3 {
		t.Fatalf("AVX512Events=%d TotalErrors=%d, want 1/3", s.AVX512Events, s.TotalErrors)
	}
	for bit := 0; bit < 3; bit++ {
		if s.BitFaultCounts[bit] != 1 {
			t.Fatalf("BitFaultCounts[%d] = %d, want 1", bit, s.BitFaultCounts[bit])
		}
	}
}

func TestParseLogIgnoresUnrelatedLines(t *testing.T) {
	log := "dramdiag 1.0.0\ntier=avx2 size=1073741824 workers=8\nrun complete: 0 errors detected\n"
	s, err := ParseLog(strings.NewReader(log))
	if err != nil {
		t.Fatalf("ParseLog error: %v", err)
	}
	if s.Unparsed != 3 || s.TotalErrors != 0 {
		t.Fatalf("Unparsed=%d TotalErrors=%d, want 3/0", s.Unparsed, s.TotalErrors)
	}
}

func TestWriteReportFaultFree(t *testing.T) {
	var buf bytes.Buffer
	WriteReport(&buf, newSummary())
	if !strings.Contains(buf.String(), "total bit errors:  0") {
		t.Fatalf("report = %q, want a zero-error line", buf.String())
	}
}
