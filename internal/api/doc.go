// Package api adapts the roster services to HTTP. Handlers decode and
// validate requests, call one service operation and render its Result:
// success values as JSON, failures through shared.RespondWithFailure.
package api
