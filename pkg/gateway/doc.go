// Package gateway sends authenticated requests to the backend.
//
// Every request passes through [Gateway.Do], which attaches the bearer token of
// the current session, a request ID and the tenant header, encodes the body and
// reacts to the two global failure modes:
//
//   - 401 Unauthorized: the session is cleared and every registered
//     [ExpiryObserver] receives one [SessionExpired] event pointing at the
//     role-selection route. The response is still returned to the caller.
//   - Transport failure: the error is wrapped in [*UnreachableError] so
//     callers can tell "backend down" apart from HTTP failures.
//
// Requests are sent once. There are no retries and no timeouts beyond the
// caller's context.
//
// # Bodies
//
// The Body field of [Request] accepts:
//
//   - nil: no body
//   - io.Reader: sent as is
//   - *Multipart: encoded as multipart/form-data with its boundary; a JSON
//     content type is never set
//   - anything else: JSON encoded, Content-Type application/json unless the
//     caller set one
//
// # Usage
//
//	gw := gateway.New(httpClient, sessions,
//		gateway.WithLogger(logger),
//		gateway.WithExpiryObserver(gateway.ExpiryFunc(func(ctx context.Context, ev gateway.SessionExpired) {
//			navigate(ev.RedirectTo)
//		})),
//	)
//
//	resp, err := gw.Do(ctx, gateway.Request{
//		Method: http.MethodPost,
//		URL:    base + "/api/jobs",
//		Body:   job,
//	})
package gateway
