// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

/*
Package fetcher performs timeout-bounded conditional HTTP GETs against the
remote prompt registry.

A previously stored ETag is echoed verbatim as If-None-Match, and the outcome
is classified three ways: fetched (2xx with a parsable payload), not-modified
(304), or failed (everything else — abort, network error, bad status, parse
failure). Callers never distinguish failure causes; those are only logged at
debug level. The fetcher never writes to disk.
*/
package fetcher
