// Package protocol defines the wire messages for driving a form over a
// live connection.
//
// Clients send events (field change, blur, submit, reset, patch); the
// server replies with full state snapshots after every mutation. Messages
// are JSON, encoded with sonic. The protocol is deliberately snapshot-
// based rather than diff-based: form state is small and a full snapshot
// keeps clients trivially consistent.
package protocol
