// Package config loads tinywin's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tinywin/config.toml
//  3. If the file does not exist, use the defaults
//  4. Missing or empty fields keep their defaults
//
// # TOML Format
//
//	process_rate = 30              # process phases per second
//	draw_rate = 15                 # draw phases per second
//	exit_key = "q"
//	theme = "Nightfox"             # Nightfox, Kanagawa or Slate
//	backend = "tcell"              # tcell or bubbletea
//	resize_debounce_frames = 10
//	log_file = "~/.local/state/tinywin/tinywin.log"
//	loader_workers = 4
//
// Paths starting with ~ are expanded to the home directory and made absolute.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than a
// missing file, malformed TOML and an unknown backend. A missing file is not
// an error.
//
// The package never writes configuration.
package config
