// Package tasks defines the task record and its on-disk JSON form.
//
// # File Format
//
// The task file is a single pretty-printed JSON array (2-space indent) so it
// stays hand-editable:
//
//	[
//	  {
//	    "id": "3f1c2a9e-6b7d-4e52-9a0f-2d8c1b7e5a44",
//	    "title": "Buy milk",
//	    "createdAt": "2026-10-19T08:30:00Z",
//	    "dueDate": "2026-10-21",
//	    "isCompleted": false,
//	    "priority": "medium",
//	    "tags": ["home"]
//	  }
//	]
//
// Optional fields (description, dueDate, completedAt) are omitted when absent.
// Unknown fields are ignored on decode. A document that is not an array, or a
// record that is missing required fields or breaks a record invariant, is
// reported as a *FormatError so the caller can fall back to the backup copy.
//
// # Invariants
//
//   - id is unique across the collection and never changes.
//   - completedAt is present exactly when isCompleted is true, and is not
//     earlier than createdAt.
//   - title is 1-200 characters after trimming; description at most 1000.
//   - at most 10 tags, each 1-20 characters of [a-z0-9_-].
//
// Completion is one-way: Task.Complete fails with ErrAlreadyComplete when the
// task is already complete and leaves CompletedAt untouched.
package tasks
