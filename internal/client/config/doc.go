// Package config loads runtime configuration for the fmcli client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the files manager API
//	-t int      request timeout (seconds)
//	-s string   file holding the session token between runs
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "request_timeout": "10s",
//	  "session_file": "/home/me/.fmcli_session"
//	}
package config
