// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

/*
Package loader resolves the current prompt set from up to four sources:
offline-saved items, the cached or freshly fetched registry payload,
user-local prompt files, and the packaged bundled defaults.

The read path is stale-while-revalidate: a cached list is always served
immediately, and staleness merely spawns a fire-and-forget background
refresh. A caller can therefore observe data up to the cache TTL stale plus
the time since the last successful refresh — that latency/consistency
tradeoff favors fast reads and is deliberate.

Network, parse, and validation failures never propagate; they drive the
fallback chain cache → remote → bundled instead. The only errors a caller
sees are persistence failures, and even those arrive alongside a usable
prompt list.
*/
package loader
