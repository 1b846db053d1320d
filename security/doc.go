// Package security provides shared security primitives.
//
// It includes the TLS configuration used by the HTTP transport layer when
// model sidecars or the inference backend sit behind TLS.
//
// # TLS Configuration
//
//	cfg := security.TLSConfig{
//	    CAFile:   "/path/to/ca.pem",
//	    CertFile: "/path/to/cert.pem",
//	    KeyFile:  "/path/to/key.pem",
//	}
//
//	tlsConfig, err := cfg.Build()
package security
