package hostprobe

import (
	"encoding/binary"
	"os"
	"path/filepath"
)

const (
	dmiGlob          = "/sys/firmware/dmi/entries/17-*/raw"
	dmiSpeedOffset   = 0x15 // as-measured speed, 16-bit little-endian
	dmiConfigOffset  = 0x20 // configured speed, 16-bit little-endian
	dmiMinRecordSize = dmiConfigOffset + 2
)

// RAMSpeedMHz is best-effort: it reads raw SMBIOS type-17 (Memory Device)
// records exposed by the Linux kernel and returns the first nonzero speed
// reading, preferring the as-measured field over the configured one. It
// returns 0 if no source is available or every record reads zero; absence
// is silent, matching hardware_ram_speed's own behavior (see DESIGN.md —
// no SMBIOS-parsing library exists anywhere in the retrieval pack, so this
// stays a thin stdlib reader of the raw entries, exactly as the original
// globbed /sys/firmware/dmi/entries itself).
func RAMSpeedMHz() uint16 {
	paths, err := filepath.Glob(dmiGlob)
	if err != nil || len(paths) == 0 {
		return 0
	}
	for _, path := range paths {
		if speed := readDMISpeed(path); speed != 0 {
			return speed
		}
	}
	return 0
}

func readDMISpeed(path string) uint16 {
	raw, err := os.ReadFile(path)
	if err != nil || len(raw) < dmiMinRecordSize {
		return 0
	}
	if speed := binary.LittleEndian.Uint16(raw[dmiSpeedOffset:]); speed != 0 {
		return speed
	}
	return binary.LittleEndian.Uint16(raw[dmiConfigOffset:])
}
