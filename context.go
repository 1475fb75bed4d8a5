package botroles

import "context"

// Context keys for botroles values.
type contextKey string

const contextKeyRegistry contextKey = "botroles:registry"

// WithRegistry adds a Registry to the context. Gated handlers require the
// registry to be present; set it once at application startup on the context
// updates are dispatched with.
func WithRegistry(ctx context.Context, reg *Registry) context.Context {
	return context.WithValue(ctx, contextKeyRegistry, reg)
}

// GetRegistry retrieves the Registry from context. Returns nil if not set.
func GetRegistry(ctx context.Context) *Registry {
	if v := ctx.Value(contextKeyRegistry); v != nil {
		if reg, ok := v.(*Registry); ok {
			return reg
		}
	}
	return nil
}

// RequireRegistry retrieves the Registry from context, returning
// ErrNotInitialized when it was never set up.
func RequireRegistry(ctx context.Context) (*Registry, error) {
	reg := GetRegistry(ctx)
	if reg == nil {
		return nil, ErrNotInitialized
	}
	return reg, nil
}
