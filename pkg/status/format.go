package status

import (
	"fmt"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent   = 2  // spaces to indent file entries
	nameWidth    = 40 // base width for filename
	outcomeWidth = 18 // width for outcome text
)

// Formatter defines how per-file results and summaries are rendered for
// the console.
type Formatter interface {
	// FormatResult renders one batch-run result line
	FormatResult(res FileResult) string

	// FormatStatus renders one dry-run preview line
	FormatStatus(name string, st FileStatus) string

	// FormatSummary renders the end-of-run summary line
	FormatSummary(rep *Report) string
}

// ConsoleFormatter provides the default Formatter implementation.
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new ConsoleFormatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatResult renders one result as an aligned, symbol-prefixed line.
func (f *ConsoleFormatter) FormatResult(res FileResult) string {
	var symbol string
	switch {
	case res.Outcome == OutcomeWritten && res.Changed:
		symbol = color.GreenString("✓")
	case res.Outcome == OutcomeWritten:
		symbol = color.CyanString("•")
	case res.Outcome == OutcomeSkippedExcluded:
		symbol = color.YellowString("-")
	case res.Outcome.Failed():
		symbol = color.RedString("✗")
	default:
		symbol = color.HiBlackString("?")
	}

	detail := res.Outcome.String()
	if res.Outcome == OutcomeWritten && !res.Changed {
		detail = "written (verbatim)"
	}

	return fmt.Sprintf("%*s%s %-*s %-*s",
		fileIndent, "", symbol,
		nameWidth, res.Name,
		outcomeWidth, detail)
}

// FormatStatus renders one dry-run preview line.
func (f *ConsoleFormatter) FormatStatus(name string, st FileStatus) string {
	var symbol string
	switch st {
	case StatusNew:
		symbol = color.GreenString("✓")
	case StatusModified:
		symbol = color.YellowString("⟳")
	case StatusWouldFail, StatusDeleted:
		symbol = color.RedString("✗")
	default:
		symbol = color.HiBlackString("-")
	}

	return fmt.Sprintf("%*s%s %-*s %-*s",
		fileIndent, "", symbol,
		nameWidth, name,
		outcomeWidth, st.String())
}

// FormatSummary renders the end-of-run counts.
func (f *ConsoleFormatter) FormatSummary(rep *Report) string {
	failed := len(rep.Failed())
	failedPart := fmt.Sprintf("%d failed", failed)
	if failed > 0 {
		failedPart = color.RedString(failedPart)
	}
	return fmt.Sprintf("%d written, %d excluded, %s",
		rep.Written(), rep.Excluded(), failedPart)
}
