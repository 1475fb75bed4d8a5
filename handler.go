package botroles

import "context"

// Handler is the update-handler contract gated handlers wrap: CheckUpdate
// decides whether the handler wants an update, HandleUpdate processes it.
type Handler interface {
	CheckUpdate(ctx context.Context, u Update) bool
	HandleUpdate(ctx context.Context, u Update) error
}

// HandlerFunc adapts a plain function to the Handler interface. CheckUpdate
// accepts every update.
type HandlerFunc func(ctx context.Context, u Update) error

// CheckUpdate implements Handler; it always returns true.
func (f HandlerFunc) CheckUpdate(ctx context.Context, u Update) bool {
	return true
}

// HandleUpdate calls the underlying function.
func (f HandlerFunc) HandleUpdate(ctx context.Context, u Update) error {
	return f(ctx, u)
}

// GatedHandler wraps a handler with a role filter: the wrapped handler only
// sees updates the filter allows. Since no role allows updates without an
// effective user or chat, do not gate handlers that must process such
// updates.
//
// HandleUpdate requires a Registry in the context (see WithRegistry) and
// fails with ErrNotInitialized otherwise, so misconfiguration surfaces as a
// clear error instead of a silent allow or deny.
type GatedHandler struct {
	filter Filter
	next   Handler
}

// Gate wraps a handler with a role filter. The filter may be a single role
// or any And/Or/Invert combination.
//
// Example:
//
//	mods, _ := registry.AddRole("moderators")
//	dispatcher.Add(botroles.Gate(mods, myHandler))
func Gate(filter Filter, next Handler) *GatedHandler {
	return &GatedHandler{filter: filter, next: next}
}

// GateFunc wraps a plain handler function with a role filter.
func GateFunc(filter Filter, next func(ctx context.Context, u Update) error) *GatedHandler {
	return Gate(filter, HandlerFunc(next))
}

// CheckUpdate evaluates the filter first and only then consults the wrapped
// handler.
func (g *GatedHandler) CheckUpdate(ctx context.Context, u Update) bool {
	if !g.filter.Evaluate(ctx, u) {
		return false
	}
	return g.next.CheckUpdate(ctx, u)
}

// HandleUpdate delegates to the wrapped handler. The Registry must be
// present in the context so handlers can reach it via GetRegistry.
func (g *GatedHandler) HandleUpdate(ctx context.Context, u Update) error {
	if _, err := RequireRegistry(ctx); err != nil {
		return err
	}
	return g.next.HandleUpdate(ctx, u)
}
