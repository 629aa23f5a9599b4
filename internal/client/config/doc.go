// Package config loads runtime configuration for the fittrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a dotenv file given with
//     -e or -env (default ".env" when present). Real environment variables win
//     over the file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the fitness API
//	-t int      request timeout (seconds)
//	-d string   path of the local SQLite database
//	-l string   log level: debug, info, warn or error
//
// Environment
//
//	API_BASE_URL   base URL of the fitness API
//	API_TIMEOUT    request timeout, "30s" or whole seconds
//	FITTRACK_DB    path of the local SQLite database
//	LOG_LEVEL      log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "30s" or integer nanoseconds. Absent keys leave values alone:
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "request_timeout": "10s",
//	  "database_path": "/var/lib/fittrack/fittrack.db",
//	  "log_level": "debug"
//	}
package config
