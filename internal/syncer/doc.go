// Package syncer keeps the managed region of a target file in step with the
// records extracted from a source file.
//
// Each pair runs through the same one-shot sequence:
//
//	preconditions -> read source -> extract -> read target -> split -> compare -> write
//
// The target is only rewritten when the rendered records differ from the
// current managed region. A strategy's preamble line (the header timestamp)
// is stripped before the comparison and regenerated on every write, so a
// second run over an unchanged source reports unchanged.
//
// Nothing is retained between runs. Pairs in a batch share no state and may
// run in parallel; the Runner rejects batches where two jobs write the same
// target.
//
// Writes go through a Writer. BackupWriter (the default) keeps the previous
// version at <target>.bak. AtomicWriter replaces the target with a single
// rename and keeps no backup.
package syncer
