// Package server exposes a Checker over HTTP.
//
// Routes:
//
//	POST /v1/validate   validate the request body (?format=json|yaml|auto&name=...)
//	GET  /v1/schema     JSON Schema of firebase.json (?section=hosting)
//	GET  /healthz       liveness
//	GET  /readyz        readiness, pings the result cache
//	GET  /metrics       Prometheus metrics
//
// A gRPC health service can be enabled for orchestrators that probe over
// gRPC.
package server
