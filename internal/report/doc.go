// Package report encodes batch results as canonical JSON.
//
// Canonical output has object keys sorted by UTF-16 code units, no HTML
// escaping, NFC-normalized strings and no insignificant whitespace, so the
// same batch always produces the same bytes. Reports are built from plain
// maps, slices, strings, integers and booleans; floats and null are
// rejected.
package report
