// Package output provides deterministic ordering and encoding for folded
// stacks.
//
// # Ordering Contract
//
// Entries are sorted by weight DESC, then path ASC (byte order). The order
// never depends on map iteration, so folding the same document twice yields
// byte-identical output.
//
// # Folded Text
//
// WriteFolded produces the format read by flamegraph renderers:
//
//	users;[];type=admin;name 5
//	metrics;requests 4
//
// Segments are joined with ';' and the weight follows a single space.
// Segments are written verbatim: a key containing ';' or a trailing space
// produces a line that renderers split differently. Renderers split each line
// on its last space, which ParseFolded mirrors.
//
// # Other Encodings
//
//   - WriteJSON writes the entries as a JSON array of {"path","weight"}.
//   - WriteTable writes the heaviest paths as an aligned table with their
//     share of the total, for reading in a terminal.
//
// NewFileWriter compresses what it is given when the destination name ends
// in .gz, .zst or .lz4.
package output
