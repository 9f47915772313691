// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

/*
Package recovery provides panic isolation for fire-and-forget background
tasks.

Background work spawned by a synchronous read path (for example the
stale-cache refresh) must never take down the process or surface an error to
the caller that triggered it. recovery.Go runs a function in a goroutine,
recovers any panic, and terminates the failure in a log entry:

	recovery.Go("registry-refresh", func() {
		if _, err := l.Refresh(ctx); err != nil {
			logger.Warnw("background refresh failed", "error", err)
		}
	})
*/
package recovery
