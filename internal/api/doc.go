// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts the quiz and statistics services to the
// JSON interface used by the web and desktop front ends.
package api
