// Package region splits a target file at a pair of delimiter marker lines.
//
// A target file has three parts:
//
//	prefix   user-owned text, up to and including the start marker line
//	managed  generated text between the markers
//	suffix   user-owned text, from the end marker line to EOF
//
// Prefix and suffix are kept byte for byte. Joining the three parts with an
// unchanged managed region reproduces the input exactly.
//
// Markers are matched as whole lines. Leading spaces and tabs before a marker
// are allowed, so an indented marker inside a function body still matches.
// Only the first occurrence of each marker is considered.
package region
