// Package config holds the application configuration store and the loader that
// fills it.
//
// Configuration is layered, lowest precedence first: built-in defaults, the
// HCL files at the top of the config directory, the HCL files under the
// directory named after the active environment, and finally environment
// variables carrying the configured prefix. Every value is addressed by a
// dotted key such as "logger.max_files".
package config
