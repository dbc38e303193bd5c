// Package apienv resolves the backend base URL from the runtime environment.
//
// The same client runs on a developer laptop, behind preview tunnels and on
// tenant subdomains of the production domain. The backend location differs in
// each case, so it is derived from an explicit environment snapshot on every
// request instead of a fixed constant:
//
//	env, err := apienv.ParsePage("https://acme.hireflow.io/manager")
//	base := apienv.Resolve(env) // "https://acme.hireflow.io"
//
// # Resolution Rules
//
// Rules are applied in order:
//
//  1. An override pointing at a remote host is ignored on a loopback page,
//     which returns [LocalBackend]. Stale production settings never leak
//     into local development.
//  2. Any other override is returned verbatim.
//  3. A loopback page returns [LocalBackend].
//  4. An HTTPS or tunnel page returns the cached tunnel URL, or the page
//     host with the frontend port (3000/3001) swapped for 8000, or the page
//     origin.
//  5. Any other page returns its origin without port; the reverse proxy in
//     front of the app routes same-origin /api paths to the backend.
//  6. Without a page (empty hostname) the result is [LocalBackend].
//
// # Sources
//
// A [Source] produces the snapshot on demand. [StoreSource] combines a page
// URL, a configured override and the tunnel URL cached in durable storage.
package apienv
