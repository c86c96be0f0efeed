package workbench

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/kryptos/pkg/errors"
)

// Save validates req and stores it under a new random key.
func (r *Runner) Save(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(r.Limits); err != nil {
		return "", err
	}
	data, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}
	key := uuid.NewString()
	if err := r.Store.Set(ctx, key, data, r.ShareTTL); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "store request")
	}
	r.Logger.Debug("saved workbench state", "key", key, "size", len(data))
	return key, nil
}

// Load reads a request stored by [Runner.Save].
func (r *Runner) Load(ctx context.Context, key string) (Request, error) {
	if err := errors.ValidateKey(key); err != nil {
		return Request{}, err
	}
	data, ok, err := r.Store.Get(ctx, key)
	if err != nil {
		return Request{}, errors.Wrap(errors.ErrCodeInternal, err, "read request")
	}
	if !ok {
		return Request{}, errors.New(errors.ErrCodeNotFound, "no saved state %q", key)
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, errors.Wrap(errors.ErrCodeInvalidJSON, err, "decode saved state %q", key)
	}
	return req, nil
}
