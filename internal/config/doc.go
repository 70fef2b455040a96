// Package config loads the docnav configuration.
//
// Configuration is a single yaml file layered over built-in defaults.
// A missing file is not an error; every setting has a usable default so
// the engine runs unconfigured. The DOCNAV_LOG_LEVEL environment
// variable overrides the configured log level.
package config
