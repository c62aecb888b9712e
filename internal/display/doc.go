// Package display owns the mutable watchface data model: the current
// Reading and the decoded graph Series, plus the dirty-flag protocol
// between the decoder and the renderer.
//
// Ownership boundary:
// - single State instance per process, constructed at startup
// - mutated only by ApplyMessage inside the link read callback
// - read by consumers through snapshots
package display
