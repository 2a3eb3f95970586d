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

package operation

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes operations
type Runner struct {
	async bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(async bool) *Runner {
	return &Runner{async: async}
}

// 🏃 Run executes an operation
func (r *Runner) Run(ctx context.Context, op Operation) error {
	zerolog.Ctx(ctx).Debug().
		Str("operation", op.Name()).
		Bool("async", r.async).
		Msg("running operation")

	if r.async {
		return r.runAsync(ctx, op)
	}
	return r.runSync(ctx, op)
}

// 🔄 runSync runs an operation synchronously
func (r *Runner) runSync(ctx context.Context, op Operation) error {
	return op.Execute(ctx)
}

// ⚡ runAsync runs an operation in a goroutine, honoring cancellation
// between operations. The per-file loop inside an operation is never
// interrupted mid-file.
func (r *Runner) runAsync(ctx context.Context, op Operation) error {
	var (
		wg      sync.WaitGroup
		execErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		execErr = op.Execute(ctx)
	}()

	// Wait for completion or context cancellation
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return errors.Errorf("operation cancelled: %w", ctx.Err())
	case <-done:
		return execErr
	}
}
