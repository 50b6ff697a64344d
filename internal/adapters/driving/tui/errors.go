package tui

import "errors"

// ErrMissingConsole is returned when the console controller is not provided.
var ErrMissingConsole = errors.New("tui: console is required")

// ErrMissingSettings is returned when the settings service is not provided.
var ErrMissingSettings = errors.New("tui: settings service is required")
