package config

import (
	"strconv"

	"github.com/matzehuels/kryptos/pkg/errors"
)

// Environment variables read by [Config.ApplyEnv].
const (
	EnvAddr          = "KRYPTOS_ADDR"
	EnvKVBackend     = "KRYPTOS_KV_BACKEND"
	EnvRedisAddr     = "KRYPTOS_REDIS_ADDR"
	EnvMongoURI      = "KRYPTOS_MONGO_URI"
	EnvCFAccountID   = "KRYPTOS_CF_ACCOUNT_ID"
	EnvCFNamespaceID = "KRYPTOS_CF_NAMESPACE_ID"
	EnvCFAPIToken    = "KRYPTOS_CF_API_TOKEN"
	EnvDev           = "KRYPTOS_DEV"
)

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv; empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	str(EnvAddr, &c.Server.Addr)
	str(EnvKVBackend, &c.KV.Backend)
	str(EnvRedisAddr, &c.KV.Redis.Addr)
	str(EnvMongoURI, &c.KV.Mongo.URI)
	str(EnvCFAccountID, &c.Cloudflare.AccountID)
	str(EnvCFNamespaceID, &c.Cloudflare.NamespaceID)
	str(EnvCFAPIToken, &c.Cloudflare.APIToken)

	if v, ok := lookup(EnvDev); ok && v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvDev)
		}
		c.KV.Dev = dev
	}
	return nil
}
