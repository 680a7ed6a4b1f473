// Package server exposes the resolver over a websocket.
//
// Clients connect to /ws and exchange JSON messages of the form
//
//	{"type": "resolve", "content": "{\"P\": 7350, \"x\": 0.9}"}
//
// Request types are resolve (content is a state) and rankine (content is
// a cycle definition). Replies are resolved, rankine or error; error
// content carries a code and message. Each connection is served by its own
// goroutines; the resolver is shared.
package server
