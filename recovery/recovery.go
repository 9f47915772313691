// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"runtime/debug"

	"github.com/jfplabs/jfp-core/logger"
)

// Go runs fn in a new goroutine and recovers from any panic, logging the
// panic value and stack trace instead of crashing the process. The goroutine
// is never joined; callers must not depend on its completion or outcome.
//
// This is the spawn-and-discard primitive used for background cache
// refreshes: the foreground read that triggered the refresh has already
// returned by the time fn runs, so there is nowhere for a failure to go
// except the log.
func Go(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("background task panicked",
					"task", name,
					"panic", r,
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
