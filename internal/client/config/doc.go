// Package config loads runtime configuration for the SysPark admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations accept strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "page_size": 5,
//	  "request_timeout": "15s",
//	  "session_db_path": "syspark.db",
//	  "log_level": "info"
//	}
//
// Environment variables are not read.
package config
