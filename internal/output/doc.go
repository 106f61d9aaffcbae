// Package output provides colored terminal output functionality for runsnap.
//
// The package offers a simple API for printing colored status lines with
// automatic color detection and graceful fallback for non-terminal environments.
//
// Features:
//   - Automatic terminal detection
//   - NO_COLOR environment variable support
//   - Different message types (success, error, warning, info, step, detail)
//   - Test-friendly with custom writers
//
// Example usage:
//
//	printer := output.NewPrinter()
//	printer.Step("Snapshotting latest run (%s)...", env)
//	printer.Error("Failed to snapshot run: %v", err)
//	printer.Saved("Snapshot saved to", path, n)
package output
