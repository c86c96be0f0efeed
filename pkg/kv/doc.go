// Package kv provides the key-value stores behind saved workbench states
// and the /api/kv routes.
//
// # Backends
//
// Every backend implements [Store]:
//
//   - [NullStore]: never stores anything (persistence disabled)
//   - [MemoryStore]: in-process map, for tests and single-instance servers
//   - [FileStore]: one JSON file per key under a directory, for the CLI
//   - [RedisStore]: Redis via go-redis, for multi-instance deployments
//   - [MongoStore]: one document per key in a MongoDB collection
//   - [SQLiteStore]: one row per key in a SQLite file (pure Go driver)
//
// Values are opaque bytes; the API stores JSON documents.
//
// # Layered lookups
//
// [Layered] combines a local store with a read-only [Remote] (the Cloudflare
// Workers KV REST API in production setups):
//
//   - The local store is always consulted first.
//   - In dev mode every lookup first pulls the remote value into the local
//     store, and a local miss falls back to the remote.
//   - Outside dev mode the remote is never contacted.
//
// Remote failures are logged and reported as misses so that a flaky upstream
// never turns a lookup into a server error.
//
// # Usage
//
//	local, _ := kv.NewFileStore(dir)
//	store := kv.NewLayered(local, cloudflareClient, kv.LayeredOptions{Dev: true})
//	data, ok, err := store.Get(ctx, "k4-notes")
package kv
