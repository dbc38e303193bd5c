// Package session keeps the authenticated session of the current user in two
// synchronized places: durable client storage and the auth cookie that the
// edge server reads before a page renders.
//
// A session is a bearer token plus a small user profile. Both are written and
// cleared together:
//
//	store := session.New(durable, jar)
//	if err := store.Set(ctx, "abc123", session.Profile{
//		UserID: "u1",
//		Role:   "manager",
//		Email:  "m@x.com",
//		Name:   "M X",
//	}); err != nil {
//		return err
//	}
//
//	store.Token(ctx)                         // "abc123"
//	store.Role(ctx)                          // session.RoleManager
//	session.DashboardPath(store.Role(ctx))   // "/manager"
//
// # Storage Layout
//
// Durable storage holds three keys: "auth_token" (raw token), "user_info"
// (JSON profile) and "tenant_subdomain" (kept across logout). The cookie holds
// the token only.
//
// Reads prefer durable storage and fall back to the cookie. When the durable
// copy exists but the cookie is gone, the cookie is rewritten so the edge
// server keeps seeing the user as signed in.
//
// # Missing Sinks
//
// Either sink may be nil, for example when running outside a page context.
// Operations on a missing sink are no-ops and reads return empty values.
//
// # Roles
//
// Role values coming from the backend are matched case-insensitively and accept
// known synonyms ("recruteur", "administrateur", "gestionnaire", ...). Unknown
// roles map to [RoleSelectionPath].
package session
