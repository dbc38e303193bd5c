// Package redis opens go-redis clients for the Redis-backed session storage
// and exposes a readiness check for the edge server.
//
// Only redis:// and rediss:// (TLS) URLs are accepted. Open pings the server
// and retries with a linear backoff before giving up:
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//	    redis.WithRetry(5, time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
package redis
