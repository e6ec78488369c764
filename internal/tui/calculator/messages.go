package calculator

import "github.com/msto63/taxwise/internal/report"

// Message types for tea.Cmd async operations

// calculatedMsg is sent when a calculation finishes
type calculatedMsg struct {
	report *report.Report
	err    error
}

// exportedMsg is sent when the PDF export finishes
type exportedMsg struct {
	path string
	err  error
}
