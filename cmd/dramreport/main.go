// dramreport summarizes a dramdiag diagnostic log: total error counts,
// unique faulting offsets, and — for an AVX512-tier run — the
// error-mask bit positions that recur most often.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	outFile := flag.String("o", "", "output file (default: stdout)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dramreport [options] logfile\n\nSummarizes a dramdiag diagnostic log.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  dramreport run.log\n")
		fmt.Fprintf(os.Stderr, "  dramreport -o summary.txt run.log\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)
	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	summary, err := ParseLog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s: %v\n", *outFile, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	WriteReport(out, summary)

	if summary.TotalErrors > 0 {
		os.Exit(1)
	}
}
