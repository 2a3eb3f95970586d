/*
Package operation implements the core business logic for rewriting upstream files.

	+-------------+
	|  Operation  |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+
	|  Pipeline   |
	| (Transform) |
	+------+------+

🎯 Purpose:
- Orchestrates listing, rewriting, and writing of source files
- Applies the rewrite rule catalogue to each candidate
- Coordinates between remote (source) and status (destination)

🔄 Flow:
1. Selector lists candidate files from the source directory
2. Pipeline applies the rewrite rules to each candidate
3. Guarded writer lands the result in the destination
4. Tracker records per-file outcomes and prints progress

⚡ Key Responsibilities:
- Batch semantics: one file failing never stops the others
- Exclusion of hand-maintained files
- Lock-file bookkeeping between runs
- Error aggregation (ErrBatchFailed) for the exit code

🤝 Interfaces:
- remote.Provider: source of upstream snapshots (fetch)
- status: guarded file writes and outcome tracking
- config: operation parameters

📝 Design Philosophy:
The operation package is the heart of retrofit, but it stays focused on
orchestration. Rewrite rules live in text, file I/O in status, and
persistence in state. Each per-file cycle is independent: no rule or
writer retains anything between files, which keeps a 40-file batch and
a single-file run indistinguishable per file.

🔍 Example:

	op, err := operation.NewTransformOperation(opts)
	if err != nil {
		return err
	}
	err = operation.NewRunner(false).Run(ctx, op)
*/
package operation
