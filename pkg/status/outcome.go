package status

// 📊 RunOutcome classifies what happened to one candidate file during a
// batch run. Every candidate ends the run with exactly one outcome.
type RunOutcome int

const (
	OutcomeUnknown           RunOutcome = iota
	OutcomeWritten                      // destination file written (or rewritten)
	OutcomeSkippedExcluded              // name is on the exclusion list, never read
	OutcomeFailedEmptyOutput            // pipeline produced zero bytes, destination kept
	OutcomeFailedIOError                // read or write failed
)

// String returns a string representation of RunOutcome
func (o RunOutcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeSkippedExcluded:
		return "excluded"
	case OutcomeFailedEmptyOutput:
		return "empty-output"
	case OutcomeFailedIOError:
		return "io-error"
	default:
		return "unknown"
	}
}

// Failed reports whether the outcome is one of the failure outcomes.
func (o RunOutcome) Failed() bool {
	return o == OutcomeFailedEmptyOutput || o == OutcomeFailedIOError
}

// 🔍 FileStatus describes how a candidate's pipeline output compares to
// the destination, without writing anything.
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // destination file doesn't exist yet
	StatusModified             // destination exists but content differs
	StatusUnchanged            // destination matches the pipeline output
	StatusWouldFail            // pipeline output is empty, the write would be refused
	StatusDeleted              // destination file was deleted
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusWouldFail:
		return "would-fail"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// 📄 FileResult is the record of one file in one run.
type FileResult struct {
	Name     string     // file name relative to the source/destination dirs
	Outcome  RunOutcome // what happened
	Changed  bool       // whether any rewrite rule fired
	Applied  []string   // names of the rules that fired
	Checksum string     // sha256 of the written content, empty unless written
	Err      error      // failure detail for the failed outcomes
}
