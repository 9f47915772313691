// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

/*
Package store reads and writes the flat JSON documents that persist the
registry cache and skill manifests.

Reads never fail: a missing, unreadable, unparsable, or schema-invalid
document uniformly reads as nil, so callers see one "absent" signal and drive
their fallback chain from it. Writes are atomic via temp-file-then-rename and
are the only operation in this subsystem whose errors propagate to the
caller — a failed persist means the operation did not durably happen.

The store is the sole writer of the cached payload, the registry metadata,
and the skill manifest documents. Readers never mutate in place.
*/
package store
