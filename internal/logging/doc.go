// Package logging provides leveled logging for the image browser.
//
// The log level is read once from the DEBUG and LOG_LEVEL environment
// variables and can be overridden at runtime with SetLevel. Output goes
// through the standard library logger so timestamps and destinations
// follow the usual log package configuration.
package logging
