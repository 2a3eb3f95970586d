package status_test

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/walteh/retrofit/pkg/status"
)

func TestFormatResult(t *testing.T) {
	color.NoColor = true
	f := status.NewConsoleFormatter()

	tests := []struct {
		name       string
		res        status.FileResult
		wantSymbol string
		wantDetail string
	}{
		{
			name:       "written_changed",
			res:        status.FileResult{Name: "A.java", Outcome: status.OutcomeWritten, Changed: true},
			wantSymbol: "✓",
			wantDetail: "written",
		},
		{
			name:       "written_verbatim",
			res:        status.FileResult{Name: "B.java", Outcome: status.OutcomeWritten},
			wantSymbol: "•",
			wantDetail: "written (verbatim)",
		},
		{
			name:       "excluded",
			res:        status.FileResult{Name: "C.java", Outcome: status.OutcomeSkippedExcluded},
			wantSymbol: "-",
			wantDetail: "excluded",
		},
		{
			name:       "empty_output",
			res:        status.FileResult{Name: "D.java", Outcome: status.OutcomeFailedEmptyOutput},
			wantSymbol: "✗",
			wantDetail: "empty-output",
		},
		{
			name:       "io_error",
			res:        status.FileResult{Name: "E.java", Outcome: status.OutcomeFailedIOError},
			wantSymbol: "✗",
			wantDetail: "io-error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := f.FormatResult(tt.res)
			assert.Contains(t, line, tt.wantSymbol)
			assert.Contains(t, line, tt.res.Name)
			assert.Contains(t, line, tt.wantDetail)
		})
	}
}

func TestFormatStatus(t *testing.T) {
	color.NoColor = true
	f := status.NewConsoleFormatter()

	assert.Contains(t, f.FormatStatus("A.java", status.StatusNew), "new")
	assert.Contains(t, f.FormatStatus("A.java", status.StatusModified), "modified")
	assert.Contains(t, f.FormatStatus("A.java", status.StatusUnchanged), "unchanged")
	assert.Contains(t, f.FormatStatus("A.java", status.StatusWouldFail), "would-fail")
}

func TestFormatSummary(t *testing.T) {
	color.NoColor = true
	f := status.NewConsoleFormatter()

	rep := &status.Report{Results: []status.FileResult{
		{Name: "A.java", Outcome: status.OutcomeWritten},
		{Name: "B.java", Outcome: status.OutcomeWritten},
		{Name: "C.java", Outcome: status.OutcomeSkippedExcluded},
		{Name: "D.java", Outcome: status.OutcomeFailedEmptyOutput},
	}}

	assert.Equal(t, "2 written, 1 excluded, 1 failed", f.FormatSummary(rep))
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "written", status.OutcomeWritten.String())
	assert.Equal(t, "excluded", status.OutcomeSkippedExcluded.String())
	assert.Equal(t, "empty-output", status.OutcomeFailedEmptyOutput.String())
	assert.Equal(t, "io-error", status.OutcomeFailedIOError.String())
	assert.Equal(t, "unknown", status.OutcomeUnknown.String())

	assert.True(t, status.OutcomeFailedEmptyOutput.Failed())
	assert.True(t, status.OutcomeFailedIOError.Failed())
	assert.False(t, status.OutcomeWritten.Failed())
	assert.False(t, status.OutcomeSkippedExcluded.Failed())
}
