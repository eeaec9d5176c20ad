// Package mcp provides an MCP (Model Context Protocol) server adapter for
// whereabouts. It lets assistants read the live dashboard slots.
package mcp

import "errors"

// ErrMissingSnapshot is returned when the snapshot renderer is not provided.
var ErrMissingSnapshot = errors.New("mcp: snapshot renderer is required")

// ErrMissingScreen is returned when the dashboard screen is not provided.
var ErrMissingScreen = errors.New("mcp: screen is required")

// ErrUnavailable is returned when an optional service was not configured.
var ErrUnavailable = errors.New("mcp: service not configured")
