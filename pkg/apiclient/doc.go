// Package apiclient is the typed client of the recruitment backend.
//
// Each backend operation is one method on [Client]: build the endpoint path,
// send it through the authenticated gateway and decode the result. Failures
// always come back as [*apierr.Error] with a localized message.
//
//	client, err := apiclient.New(sessions,
//		apiclient.WithEnvSource(apienv.NewStoreSource(pageURL, "", durable)),
//		apiclient.WithHTTPClient(&http.Client{Jar: jar.CookieJar()}),
//		apiclient.WithLogger(logger),
//	)
//
//	res, err := client.Login(ctx, "m@x.com", "secret")
//	// res.RedirectTo == "/manager"
//
//	jobs, err := client.ListJobs(ctx, apiclient.JobFilter{Status: "open"})
//
// # Generic Requests
//
// Endpoints without a dedicated method can be called with [Request]:
//
//	stats, err := apiclient.Request[map[string]any](ctx, client, http.MethodGet, "/api/stats")
//
// Successful responses never fail to decode: non-JSON or malformed bodies
// yield the zero value.
//
// # Degraded Reads
//
// Some dashboard widgets are fed by lists the viewer may not be allowed to
// see. Those methods (ListPendingJobs, GetClientJobRequests,
// ListPendingShortlists, ListNotifications) return an empty list on 401 and
// 422 instead of an error.
//
// # Session Expiry
//
// Any 401 clears the session and notifies the observers registered with
// [WithExpiryObserver]. The application is expected to navigate to the
// event's RedirectTo route.
package apiclient
