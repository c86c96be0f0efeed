// Package config loads kryptos settings from a TOML file and the environment.
//
// The file lives at $XDG_CONFIG_HOME/kryptos/config.toml (default
// ~/.config/kryptos/config.toml). A missing file at the default location
// means defaults; a missing file passed explicitly is an error.
//
//	[server]
//	addr = ":8080"
//	max_diameter = 512
//
//	[kv]
//	backend = "redis"
//	ttl = "720h"
//	dev = true
//
//	[kv.redis]
//	addr = "localhost:6379"
//
//	[cloudflare]
//	account_id = "..."
//	namespace_id = "..."
//
// Values from KRYPTOS_* environment variables override the file (see
// [Config.ApplyEnv]). Secrets such as the Cloudflare API token are usually
// supplied that way.
package config
