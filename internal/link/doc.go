// Package link maintains the websocket session to the phone app: dial,
// capability handshake, the synchronous inbound decode loop, and
// reconnect supervision with backoff.
package link
