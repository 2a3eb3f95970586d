// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// 📈 Tracker collects per-file results during a run and echoes each one
// to the console as it lands. Record is safe to call concurrently.
type Tracker struct {
	mu        sync.Mutex
	results   []FileResult
	console   io.Writer
	formatter Formatter
}

// 🏭 NewTracker creates a tracker writing per-file lines to console. A
// nil console disables the echo.
func NewTracker(console io.Writer, formatter Formatter) *Tracker {
	return &Tracker{console: console, formatter: formatter}
}

// 📝 Record stores one file result and prints its console line.
func (t *Tracker) Record(ctx context.Context, res FileResult) {
	evt := zerolog.Ctx(ctx).Debug().
		Str("file", res.Name).
		Stringer("outcome", res.Outcome).
		Bool("changed", res.Changed).
		Strs("rules", res.Applied)
	if res.Err != nil {
		evt = evt.Err(res.Err)
	}
	evt.Msg("file processed")

	t.mu.Lock()
	defer t.mu.Unlock()

	t.results = append(t.results, res)
	if t.console != nil {
		fmt.Fprintln(t.console, t.formatter.FormatResult(res))
	}
}

// 🔭 Preview prints a dry-run status line without recording a result.
func (t *Tracker) Preview(ctx context.Context, name string, st FileStatus) {
	zerolog.Ctx(ctx).Debug().
		Str("file", name).
		Stringer("status", st).
		Msg("file status")

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.console != nil {
		fmt.Fprintln(t.console, t.formatter.FormatStatus(name, st))
	}
}

// 📝 Summary prints the end-of-run summary line.
func (t *Tracker) Summary(ctx context.Context) {
	rep := t.Report()

	zerolog.Ctx(ctx).Info().
		Int("written", rep.Written()).
		Int("excluded", rep.Excluded()).
		Int("failed", len(rep.Failed())).
		Msg("run complete")

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.console != nil {
		fmt.Fprintln(t.console, t.formatter.FormatSummary(rep))
	}
}

// 📊 Report returns the collected results sorted by name.
func (t *Tracker) Report() *Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	results := make([]FileResult, len(t.results))
	copy(results, t.results)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return &Report{Results: results}
}

// 📋 Report is the aggregate view of one run.
type Report struct {
	Results []FileResult
}

// Written counts files written to the destination.
func (r *Report) Written() int {
	return r.count(OutcomeWritten)
}

// Excluded counts files skipped by the exclusion list.
func (r *Report) Excluded() int {
	return r.count(OutcomeSkippedExcluded)
}

// Failed returns the results that ended in a failure outcome.
func (r *Report) Failed() []FileResult {
	var failed []FileResult
	for _, res := range r.Results {
		if res.Outcome.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// OK reports whether the run had no failures.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

func (r *Report) count(outcome RunOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}
