// Package protocol owns the phone<->display wire contract.
//
// Ownership boundary:
// - message key and capability constants
// - protocol revision descriptors (field widths, capacities, value scaling)
// - capability announcement encoding
package protocol
