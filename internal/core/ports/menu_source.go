package ports

import "context"

// MenuSource fetches the raw menu document. Implementations must honour ctx
// cancellation; the resolver bounds every call with a timeout.
type MenuSource interface {
	Fetch(ctx context.Context) (map[string]any, error)
}
