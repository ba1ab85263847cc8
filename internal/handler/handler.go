// Package handler is the HTTP layer, the first entry point for business
// logic after the router.
//
// Handlers bind and validate request payloads through the generic Handle
// helpers, call the service layer and write JSON responses. Errors are
// returned unchanged and rendered by the global error handler.
package handler
