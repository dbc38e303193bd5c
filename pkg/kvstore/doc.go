// Package kvstore provides the durable key-value storage used to persist
// client-side state such as the access token, the user profile and the
// tenant subdomain.
//
// All backends implement the same [Store] interface, so the session layer
// can run against an in-memory map in tests, a JSON file on a workstation,
// or Redis when the SDK is embedded in a server process.
//
// # Backends
//
// Use [NewMemory] for tests and short-lived processes:
//
//	s := kvstore.NewMemory()
//	defer s.Close()
//
// Use [NewFile] to persist state across process restarts:
//
//	s, err := kvstore.NewFile(kvstore.DefaultFilePath())
//
// Use [NewRedis] when several processes share the same state:
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	s := kvstore.NewRedis(client, kvstore.WithPrefix("hireflow"))
//
// [Open] picks a backend from a URL (memory://, file:///path, redis://host).
//
// # Error Handling
//
// Get returns [ErrNotFound] for missing keys. Operations on a closed store
// return [ErrClosed].
package kvstore
