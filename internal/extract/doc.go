// Package extract turns C source text into ordered records of generated text.
//
// Each Strategy bundles everything that is specific to one kind of managed
// region: how records are found in the source, how they are rendered into
// the managed region, which delimiter pair bounds that region, which file
// extensions are expected, and whether the region starts with a generated
// preamble line.
//
// Two strategies are provided:
//
//	HeaderStrategy  extern function headers from a .c file into a .h file
//	TestStrategy    START_TEST declarations into a check suite block
//
// Extraction is deterministic and total: text that does not match is
// ignored, and records come back in file order.
package extract
