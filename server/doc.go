// Package server hosts the HTTP surface: a Gin engine behind the standard
// middleware stack, served over h2c so HTTP/2 clients work without TLS.
package server
