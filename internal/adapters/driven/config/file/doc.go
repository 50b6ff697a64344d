// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration under ~/.storesync/config.toml
//   - Watcher: reloads a ConfigStore when the file changes on disk
package file
