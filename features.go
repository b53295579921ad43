package main

import (
	"fmt"
	"runtime"
	"sort"
)

// Version is the engine's release tag, bumped on every battery or wire
// format change.
const Version = "1.0.0"

// compiledFeatures tracks build-time feature flags via init() registration
// in this file (battery) and in the build-tagged features_*.go files
// (visualize).
var compiledFeatures []string

func printFeatures() {
	fmt.Printf("dramdiag %s\n", Version)
	fmt.Printf("  Go version: %s\n", runtime.Version())
	fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println()
	fmt.Println("Compiled features:")

	sort.Strings(compiledFeatures)
	for _, f := range compiledFeatures {
		fmt.Printf("  %s\n", f)
	}
	if len(compiledFeatures) == 0 {
		fmt.Println("  (none)")
	}
}

func init() {
	compiledFeatures = append(compiledFeatures, "battery: avx2, avx512")
}
