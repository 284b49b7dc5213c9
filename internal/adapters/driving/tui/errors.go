// Package tui provides an interactive terminal browser for run reports.
package tui

import "errors"

// ErrNoReport is returned when the browser is started without a report.
var ErrNoReport = errors.New("tui: report is required")
