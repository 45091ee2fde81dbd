// Package server exposes a Fibonacci device over HTTP.
//
// A client opens the single device session with POST /v1/session and then
// drives it through the returned handle id:
//
//	POST   /v1/session                 open, 201 or 409 when busy
//	POST   /v1/session/{id}/seek       {"offset": n, "whence": "set|cur|end"}
//	POST   /v1/session/{id}/write?len=N
//	GET    /v1/session/{id}/read
//	DELETE /v1/session/{id}            release
//	GET    /healthz
//	GET    /metrics
//
// Errors are returned as {"error": "...", "errno": "EBUSY"}.
package server
