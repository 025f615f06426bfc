// Package dom provides the mutable display tree wecco renders into.
//
// The tree is an owned, linked node structure (elements, text, comments,
// fragments and documents) with ordered attributes, live properties, event
// listeners and shadow roots. It is the concrete stand-in for a browser DOM:
// the template engine clones parsed fragments into it, walks it in document
// order and mutates it in place.
//
// # Core Types
//
// Node is the single node type; NodeType discriminates its kind. Event and
// Listener implement capture/target/bubble dispatch, including composed
// events that cross shadow boundaries.
//
// # Documents and reactions
//
// A Document is the root of a connected tree. Reactions installed on a
// document are notified whenever an element becomes connected to, or
// disconnected from, that document. The component package uses this to turn
// registered tags into live component hosts.
//
// # Parsing
//
// ParseFragment tokenizes markup with golang.org/x/net/html and builds a
// fragment that keeps the authored case of attribute names.
//
// The tree is not safe for concurrent use; all mutation must happen on one
// goroutine (see package scheduler).
package dom
