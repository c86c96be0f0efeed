// Package httputil provides retry helpers for outgoing HTTP calls.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff when it fails with a
// [RetryableError]. Clients wrap transient failures (connection errors, 5xx
// responses) so that permanent failures such as 404 or 401 return at once:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// The delay doubles after each failed attempt and is capped at [MaxDelay].
// Cancelling ctx stops the loop between attempts.
package httputil
