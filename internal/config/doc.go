// Package config loads marquee's TOML configuration from
// ~/.config/marquee/config.toml, applying defaults when the file or any
// field is missing. The TMDB_API_KEY environment variable overrides the
// file's catalog key.
package config
