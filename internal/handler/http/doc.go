// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as bearer authentication, request tracing,
// access logging, CORS, compression, and panic recovery are handled in this
// package before requests are delegated to the service layer.
//
// Every failure is answered with the JSON body {"error": "<message>"}.
package http
