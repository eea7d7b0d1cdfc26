// Package failures defines the error markers shared by the retile and plot
// pipelines.
//
// Every terminating error is tagged with one of the exported sentinels via
// Wrap so the CLI can report a consistent message and pick an exit code
// without inspecting error strings.
package failures
