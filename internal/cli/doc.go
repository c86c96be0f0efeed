// Package cli implements the kryptos command-line interface.
//
// The commands wrap text around a scytale, explore grids interactively,
// browse the Kryptos seed texts, manage the key-value store and serve the
// HTTP API. The CLI is built on cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - wrap: build a grid and print it with its readouts
//   - explore: interactive grid explorer (bubbletea)
//   - seeds: list and show the built-in texts
//   - link: print a shareable workbench URL
//   - kv: inspect and edit the key-value store
//   - serve: run the HTTP API
//   - images: regenerate or watch the image manifest
//
// # Output
//
// Command results (grids, readouts, stored values) go to stdout. Status
// lines and logs go to stderr, so results can be piped into other commands:
//
//	kryptos seeds show k1Plain | kryptos wrap -i - -d 7 --read cols --format text
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context by the root command.
package cli
