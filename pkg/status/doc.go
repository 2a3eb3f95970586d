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

/*
Package status tracks per-file outcomes and owns the guarded file writes.

	+-----------+     Record      +-----------+
	| operation | --------------> |  Tracker  |
	+-----------+                 +-----+-----+
	      |                             |
	      | WriteFileGuarded            | Report
	      v                             v
	+-----------+                 +-----------+
	|  Writer   |                 |  Report   |
	| (tmp+mv)  |                 | (counts)  |
	+-----------+                 +-----------+

🎯 Purpose:
- Classifies every candidate file into exactly one RunOutcome
- Writes destination files through a temp sibling and a rename
- Refuses to replace a destination with zero bytes (ErrEmptyOutput)
- Aggregates results into a Report the driver turns into an exit status

🔄 Flow:
1. The operation processes one file and calls Record with its result
2. The Tracker echoes an aligned console line and a zerolog event
3. After the last file, Report sorts and counts everything
4. A Report with failures makes the whole batch fail

📝 Design Philosophy:
A batch run never stops early: every candidate gets exactly one outcome,
and failures surface at the end as counts rather than as a mid-run
abort. The Writer never leaves a half-written destination behind: the
destination is only ever swapped for a complete temp file.

🔍 Example:

	writer := status.NewWriter(cfg.Destination)
	err := writer.WriteFileGuarded(ctx, "JsonParser.java", output)
	if errors.Is(err, status.ErrEmptyOutput) {
		// destination kept, outcome is OutcomeFailedEmptyOutput
	}
*/
package status
