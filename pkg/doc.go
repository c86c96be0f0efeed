// Package pkg provides the core libraries of the Kryptos scytale workbench.
//
// # Overview
//
// Kryptos wraps text around a virtual scytale: the text is written row by row
// into a grid whose width is the scytale diameter, optionally rotated and
// reversed, and read back by rows or by columns. The pkg directory is
// organized into three areas:
//
//  1. Domain logic: [scytale] (grid engine), [seeds] (Kryptos K1-K4 texts),
//     [workbench] (validated requests, runner, share links)
//  2. Infrastructure: [kv] (local, Redis, MongoDB and layered stores),
//     [config], [errors], [observability], [manifest], [urlstate]
//  3. Surfaces and clients: [api] (chi HTTP server), [integrations] with the
//     Cloudflare Workers KV remote, and [httputil] retries
//
// # Architecture
//
// A request flows through the packages like this:
//
//	CLI flags / query string / JSON body
//	         ↓
//	    [workbench] Request (validated against Limits)
//	         ↓
//	    [scytale] Build → Grid → Read
//	         ↓
//	    table, text or JSON output
//
// # Quick Start
//
//	import "github.com/matzehuels/kryptos/pkg/scytale"
//
//	g := scytale.Build("WEAREDISCOVERED", 4, scytale.Options{})
//	fmt.Println(scytale.ReadByColumns(g, true, true))
//
// # Command-Line Interface
//
// The kryptos binary in cmd/kryptos exposes wrap, explore, seeds, link, kv,
// serve and images commands on top of these packages.
package pkg
