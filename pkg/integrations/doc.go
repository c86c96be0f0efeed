// Package integrations provides HTTP clients for the external services the
// workbench talks to.
//
// # Overview
//
// Each service has its own subpackage:
//
//   - [cloudflare]: Cloudflare Workers KV REST API, the remote behind
//     [kv.Layered]
//
// # Shared Infrastructure
//
// The [Client] type provides the HTTP plumbing shared by all service
// clients:
//
//   - default headers (authentication, content type)
//   - retry with backoff for transient failures via [httputil.Retry]
//   - status mapping to [ErrNotFound], [ErrUnauthorized] and [ErrNetwork]
//   - request events for [observability.HTTPHooks]
//
// # Adding a New Service
//
//  1. Create a subpackage: pkg/integrations/<service>/
//  2. Embed or hold a [Client] built with [NewClient]
//  3. Translate [ErrNotFound] into the caller's notion of a miss
//
// [cloudflare]: github.com/matzehuels/kryptos/pkg/integrations/cloudflare
// [kv.Layered]: github.com/matzehuels/kryptos/pkg/kv.Layered
// [httputil.Retry]: github.com/matzehuels/kryptos/pkg/httputil.Retry
// [observability.HTTPHooks]: github.com/matzehuels/kryptos/pkg/observability.HTTPHooks
package integrations
