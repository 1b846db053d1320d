// Package resilience provides the fault-tolerance primitives the service
// puts in front of its slow, failure-prone dependencies: the model sidecars,
// the metered inference API, and the ffmpeg binary.
//
//   - CircuitBreaker: fails fast once a sidecar is clearly down, instead of
//     holding every upload open for the full model timeout
//   - Retry: retries transient inference failures with exponential backoff
//   - Bulkhead: caps concurrent ffmpeg runs so an upload burst cannot
//     starve the host
//   - RateLimiter: token bucket keeping request bursts under an upstream
//     quota
//
// The httpclient package composes retry, circuit breaker, and rate limiter
// around each outbound call; the audio transcoder wraps subprocess runs in a
// bulkhead:
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{
//		Name:          "ffmpeg",
//		MaxConcurrent: 4,
//	})
//	result, err := resilience.ExecuteWithResult(bh, ctx, runFFmpeg)
package resilience
