// Package sinks holds the logger.Sink implementations: the daily rotating log
// file, a plain stream writer and a socket.io forwarder. All text sinks share
// the line layout produced by Format.
package sinks
