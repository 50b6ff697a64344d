// Package mcp provides an MCP (Model Context Protocol) server adapter for storesync.
// It lets an AI assistant fetch and sync stores and read activity and history.
package mcp

import "errors"

var (
	// ErrMissingConsole is returned when the console service is not provided.
	ErrMissingConsole = errors.New("mcp: console service is required")

	// ErrMissingSettings is returned when the settings service is not provided.
	ErrMissingSettings = errors.New("mcp: settings service is required")

	// ErrJournalDisabled is returned by history tools when no journal is wired.
	ErrJournalDisabled = errors.New("mcp: submission journal is disabled")
)
