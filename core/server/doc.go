// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from this Config: listen address,
// optional API key protection and body limit.
package server
