// Package diag holds the line-attributed diagnostics model shared by the
// uniform parser, the scan driver and the renderers.
//
// # Data model
//
// A diagnostic is stored as an ErrorLine: one or more ErrorLineFragment values
// shown side by side on a single output line. Fragments that carry a file and
// line are "clickable" (renderers turn them into jump-to-source links), the
// others are plain text.
//
//   - LineFileErrors is a short-lived builder keyed by (line, file). Setting the
//     same key twice merges the fragment lists instead of replacing them.
//   - SyntaxErrors is the durable store owned by one compile unit. It nests
//     concern -> severity -> category -> file -> line and remembers whether any
//     error or warning was ever recorded since the last Clear.
//
// # Emitting diagnostics
//
// Producers never see SyntaxErrors directly. They write through a Sink, which
// is implemented by the compile unit that owns the store (see internal/unit).
// A single message goes through Sink.SetSyntaxError; multi-fragment lines are
// built with LineFileErrors and committed with SyntaxErrors.SetSyntaxError.
//
// An optional Observer sees every (file, line) pair as it is committed. The
// CLI uses it to mirror diagnostics into the trace stream.
//
// # Consumers
//
//   - internal/unit: recursive queries over the include graph.
//   - internal/diagfmt: pretty and JSON rendering of flattened Entries.
//   - FormatShort in this package: stable one-line-per-entry text for tests and
//     the `short` CLI format.
package diag
