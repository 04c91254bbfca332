// Package config handles configuration loading and merging for trigen.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--rows, --symbol, --theme, --addr, etc.)
//  2. Process environment variables
//  3. A .env file in the working directory (never overrides variables already set)
//  4. YAML settings file (.trigen.yaml in the working directory or ~/.config/trigen/.trigen.yaml)
//  5. Hardcoded defaults
//
// # Store Connection
//
// Persistence needs three variables, all required together:
//
//   - DB_URL: mongodb://, mongodb+srv:// or sqlite:// connection URL
//   - DB_NAME: database name
//   - COLLECTION_NAME: collection (or table) receiving one record per pattern
//
// Missing any of them is a ConfigError; commands that persist refuse to start.
//
// # Other Environment Variables
//
//   - TRIGEN_THEME: chalk, sandstone or mono
//   - TRIGEN_ADDR: listen address for the web form
//   - NO_COLOR: any non-empty value selects the mono theme
//   - TRIGEN_DEBUG: any non-empty value enables debug output
package config
