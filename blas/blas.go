// Package blas dynamically loads a system OpenBLAS and exposes the single
// cblas_sgemm entry point the sgemm battery test drives. It is promoted
// here from an indirect dependency of the engine's audio/video backends
// (purego already ships transitively via ebitengine/oto and
// ebitengine/purego in go.mod) to a direct one: the same Dlopen +
// RegisterLibFunc shape those backends rely on internally to bind native
// platform libraries, applied to libopenblas instead of a platform audio
// API. There is no cgo dependency and no build-time link requirement —
// Load reports ok=false when no OpenBLAS is installed, and callers treat
// the sgemm test as skippable in that case (spec.md section 5.5's
// explicit "skip if OpenBLAS is unavailable" behavior).
package blas

import (
	"runtime"

	"github.com/ebitengine/purego"
)

const (
	rowMajor = 101
	noTrans  = 111
)

// Kernel is a bound cblas_sgemm entry point from a dynamically loaded
// OpenBLAS.
type Kernel struct {
	sgemm func(order, transA, transB, m, n, k int32, alpha float32, a uintptr, lda int32, b uintptr, ldb int32, beta float32, c uintptr, ldc int32)
}

// Load attempts to dlopen a system OpenBLAS and bind cblas_sgemm. ok is
// false if no library could be found; callers must treat that as "skip
// the sgemm test", never as an error.
func Load() (k *Kernel, ok bool) {
	for _, name := range candidateNames() {
		handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			continue
		}
		k = &Kernel{}
		purego.RegisterLibFunc(&k.sgemm, handle, "cblas_sgemm")
		return k, true
	}
	return nil, false
}

func candidateNames() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"libopenblas.dylib", "/opt/homebrew/opt/openblas/lib/libopenblas.dylib", "/usr/local/opt/openblas/lib/libopenblas.dylib"}
	case "windows":
		return []string{"libopenblas.dll", "openblas.dll"}
	default:
		return []string{"libopenblas.so.0", "libopenblas.so"}
	}
}

// SGEMM computes C = alpha*A*B + beta*C for row-major n x n matrices
// backed by raw buffers, mirroring cblas_sgemm(CblasRowMajor,
// CblasNoTrans, CblasNoTrans, ...).
func (k *Kernel) SGEMM(n int, alpha float32, a, b []float32, beta float32, c []float32) {
	k.sgemm(rowMajor, noTrans, noTrans,
		int32(n), int32(n), int32(n),
		alpha, sliceAddr(a), int32(n),
		sliceAddr(b), int32(n),
		beta, sliceAddr(c), int32(n))
}
