// Package cloudflare provides a client for the Cloudflare Workers KV REST API.
//
// Values are addressed as
//
//	{base}/accounts/{account}/storage/kv/namespaces/{namespace}/values/{key}
//
// and authenticated with an API token sent as a Bearer header. The [Client]
// implements [kv.Remote], so it can back a [kv.Layered] store directly:
//
//	cf, err := cloudflare.NewClient(cloudflare.Config{
//	    AccountID:   os.Getenv("KRYPTOS_CF_ACCOUNT_ID"),
//	    NamespaceID: os.Getenv("KRYPTOS_CF_NAMESPACE_ID"),
//	    APIToken:    os.Getenv("KRYPTOS_CF_API_TOKEN"),
//	})
//	store := kv.NewLayered(local, cf, kv.LayeredOptions{Dev: true})
//
// A 404 from the API is a miss, not an error.
//
// [kv.Remote]: github.com/matzehuels/kryptos/pkg/kv.Remote
// [kv.Layered]: github.com/matzehuels/kryptos/pkg/kv.Layered
package cloudflare
