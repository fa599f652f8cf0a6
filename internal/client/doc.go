// Package client implements the command-line client of the Dark Haven API.
//
// Each invocation runs one command (register, login, feed, send, ...)
// through an [adapter.ServerAdapter] and prints the server's answer as
// indented JSON.
package client
