package botroles

import (
	"context"
	"fmt"
)

// Filter is the evaluate contract shared by roles and their boolean
// combinations. Anything satisfying Filter can gate a handler.
type Filter interface {
	Evaluate(ctx context.Context, u Update) bool
}

// FilterFunc adapts an ordinary predicate to the Filter interface.
type FilterFunc func(ctx context.Context, u Update) bool

// Evaluate calls the underlying function.
func (f FilterFunc) Evaluate(ctx context.Context, u Update) bool {
	return f(ctx, u)
}

type andFilter struct {
	filters []Filter
}

// And combines filters so that an update is allowed only when every filter
// allows it. Filters are evaluated left to right and evaluation stops at the
// first rejection, so cheap filters should come first when combining with
// dynamic roles.
func And(filters ...Filter) Filter {
	return &andFilter{filters: filters}
}

// Evaluate implements Filter.
func (f *andFilter) Evaluate(ctx context.Context, u Update) bool {
	for _, filter := range f.filters {
		if !filter.Evaluate(ctx, u) {
			return false
		}
	}
	return true
}

type orFilter struct {
	filters []Filter
}

// Or combines filters so that an update is allowed when any filter allows
// it. Filters are evaluated left to right and evaluation stops at the first
// acceptance.
func Or(filters ...Filter) Filter {
	return &orFilter{filters: filters}
}

// Evaluate implements Filter.
func (f *orFilter) Evaluate(ctx context.Context, u Update) bool {
	for _, filter := range f.filters {
		if filter.Evaluate(ctx, u) {
			return true
		}
	}
	return false
}

// InvertedRole excludes a role and everything below it.
//
// The inversion is deliberately asymmetric: an inverted role rejects updates
// granted by the role itself or by any of its child roles, but it does NOT
// reject updates granted by the role's parents, and members of the
// hierarchy's admin root pass unconditionally. This keeps the hierarchy
// invariant intact: a parent can do everything its children can do.
type InvertedRole struct {
	role *Role
}

// Role returns the underlying role.
func (i *InvertedRole) Role() *Role {
	return i.role
}

// Evaluate implements Filter.
func (i *InvertedRole) Evaluate(ctx context.Context, u Update) bool {
	return i.role.evaluate(ctx, u, nil, true)
}

// And combines the inverted role with another filter, short-circuit.
func (i *InvertedRole) And(other Filter) Filter {
	return And(i, other)
}

// Or combines the inverted role with another filter, short-circuit.
func (i *InvertedRole) Or(other Filter) Filter {
	return Or(i, other)
}

// String renders the filter as "<inverted Role(...)>".
func (i *InvertedRole) String() string {
	return fmt.Sprintf("<inverted %s>", i.role)
}
