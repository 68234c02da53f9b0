// Package middleware contains the HTTP middleware stack.
//
// It covers request correlation (request IDs), request-scoped logging,
// CORS, panic recovery, secure headers, and the global error handler
// that funnels every error into one JSON response schema.
package middleware
