// Package config loads grindmap settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, normally ~/.config/grindmap/config.toml
//  3. GRINDMAP_<SECTION>_<KEY> environment variables
//
// A missing file is not an error. Example file:
//
//	[logging]
//	level = "debug"
//	file = "/tmp/grindmap.log"
//
//	[history]
//	max_entries = 500
//	exact_height_undo = true
//
//	[editor]
//	scroll_step = 1
//	watch_files = true
//	extend_modifier = "shift"
//
//	[ui]
//	mouse = true
//	cell_width = 3
//
// The same history limit from the environment is GRINDMAP_HISTORY_MAX_ENTRIES=200.
package config
