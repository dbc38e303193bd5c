// Package health provides liveness and readiness handlers for the edge server.
//
// Liveness always answers OK while the process runs. Readiness runs a set of
// named [Checks] in parallel, typically the reachability of the backend the
// edge server proxies to:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"backend": health.HTTPCheck(client, backendURL+"/health"),
//		"redis":   redis.Healthcheck(rdb),
//	}, health.WithTimeout(3*time.Second)))
//
// Responses are plain text by default and JSON when the client sends
// "Accept: application/json" or "?format=json".
package health
