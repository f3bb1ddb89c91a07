// Package templates provides the small set of text blobs a24z seeds into
// a repository outside the store's own JSON records: the starter
// note-guidance file and the pre-commit hook script. Neither is read or
// written by the core engines — both are plain text the CLI manages on
// the core's behalf.
package templates

// NoteGuidance is the starter content for .a24z/note-guidance.md, seeded
// once by `a24z init` if the file is not already present. The core never
// writes this file; per its contract it is read if present and ignored
// if absent.
const NoteGuidance = `# Note guidance

This file is read by external callers (agents, editor integrations) as
plain text context for writing good notes in this repository. It is not
interpreted by a24z itself — edit it freely.

## What makes a good note

- Anchor it to the files or directories it actually explains.
- State the decision or gotcha, not a restatement of the code.
- Prefer a handful of durable tags over many one-off ones.

## Suggested tags

- decision — a choice made and why
- pattern — a convention followed elsewhere in the codebase
- gotcha — a non-obvious failure mode
- explanation — background a newcomer would want
`

// HookBlock is the pre-commit hook body a24z installs via `a24z hooks`.
// It is wrapped in marker comments so the hooks subsystem can find and
// remove its own block without disturbing anything else in the hook
// file.
const HookBlock = `# a24z-hooks:begin
a24z validate-all --errors-only || exit 1
a24z lint --errors-only || exit 1
# a24z-hooks:end
`
