// Package config defines the settings that users can set through environment
// variables or the config file to affect every kg tool: program name shown in
// help, log level and log destination.
//
// Settings live in a separate package from the command-line parser so that
// both the dispatcher and individual tools can read them without an import
// loop.
package config
