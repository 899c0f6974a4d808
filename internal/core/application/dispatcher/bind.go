package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

// Bind adapts a typed handler to HandlerFunc. The validated argument object
// is decoded into T with encoding/json, so T's json tags name the parameters.
//
// Example:
//
//	type removeArgs struct {
//	    Index int `json:"index"`
//	}
//
//	op := Operation{
//	    Name:    "remove_from_cart",
//	    Handler: Bind(func(ctx context.Context, sid string, in removeArgs) (Result, error) {
//	        return Result{"ok": true, "index": in.Index}, nil
//	    }),
//	}
func Bind[T any](fn func(ctx context.Context, sessionID string, in T) (Result, error)) HandlerFunc {
	return func(ctx context.Context, sessionID string, args Args) (Result, error) {
		var in T
		b, err := json.Marshal(args)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &in); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("arguments", fmt.Errorf("decode arguments: %w", err))
		}
		return fn(ctx, sessionID, in)
	}
}
