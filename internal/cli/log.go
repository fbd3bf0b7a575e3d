// Package cli implements the treeviz command-line interface.
//
// The CLI reconstructs trees and graphs from level-order arrays, lays them
// out, and renders them to files. It is built on cobra, prints styled status
// lines with lipgloss, and logs with charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - build: Reconstruct a structure and save it as graph JSON
//   - layout: Compute node positions from an array or graph JSON
//   - visualize: Render a saved layout to SVG, PNG, PDF and text formats
//   - render: Run build, layout and visualize in one step
//   - info: Print the summary or the detail record of one node
//   - explore: Browse nodes interactively
//   - serve: Expose the pipeline over HTTP
//   - cache: Manage the layout and artifact cache
//
// # Configuration
//
// Defaults come from the config file (--config, or
// $XDG_CONFIG_HOME/treeviz/config.toml); flags given on the command line
// take precedence.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
