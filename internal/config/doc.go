// Package config provides configuration loading, merging, and validation
// facilities for the console client.
//
// Configuration is assembled from multiple sources; for every field the first
// non-zero value wins in the following order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults ([Defaults])
//
// The configuration is resolved once at startup by [GetStructuredConfig] and
// passed down explicitly; no other package reads the environment.
package config
