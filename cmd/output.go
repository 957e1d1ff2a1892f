package cmd

import (
	"fmt"
	"os"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// Data lines go to stdout; everything produced by these helpers goes to
// stderr so mtlist output stays pipeable.
//
// Icon semantics:
//   ✗  error / failure
//   ~  neutral info (only with --verbose)

// printErr prints an error line to stderr.
func printErr(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ✗  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ✗  [%s] %s\n", name, msg)
	}
}

// printInfo prints a neutral informational line to stderr.
func printInfo(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ~  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ~  [%s] %s\n", name, msg)
	}
}
