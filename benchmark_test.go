package botroles

import (
	"context"
	"fmt"
	"testing"
)

// buildChain creates a parent->child chain of the given depth and returns the
// top and bottom roles. The top role holds the single member.
func buildChain(h *Hierarchy, depth int) (top, bottom *Role) {
	top = h.NewRole(WithName("level-0"), WithMembers(1))
	bottom = top
	for i := 1; i < depth; i++ {
		next := h.NewRole(WithName(fmt.Sprintf("level-%d", i)))
		if err := bottom.AddChildRole(next); err != nil {
			panic(err)
		}
		bottom = next
	}
	return top, bottom
}

// BenchmarkEvaluateDirect benchmarks a direct membership hit.
func BenchmarkEvaluateDirect(b *testing.B) {
	ctx := context.Background()
	h := NewHierarchy()
	role := h.NewRole()
	for i := range int64(1000) {
		role.AddMember(i)
	}
	update := UserUpdate(500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !role.Evaluate(ctx, update) {
			b.Fatal("expected allow")
		}
	}
}

// BenchmarkEvaluateMiss benchmarks a full rejection, which walks the whole
// ancestor search.
func BenchmarkEvaluateMiss(b *testing.B) {
	ctx := context.Background()
	h := NewHierarchy()
	_, bottom := buildChain(h, 10)
	update := UserUpdate(999)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if bottom.Evaluate(ctx, update) {
			b.Fatal("expected deny")
		}
	}
}

// BenchmarkEvaluateAncestor benchmarks an allow granted by a role ten levels
// up the hierarchy.
func BenchmarkEvaluateAncestor(b *testing.B) {
	ctx := context.Background()
	h := NewHierarchy()
	_, bottom := buildChain(h, 10)
	update := UserUpdate(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !bottom.Evaluate(ctx, update) {
			b.Fatal("expected allow")
		}
	}
}

// BenchmarkEvaluateAdminOverride benchmarks the admin fast path.
func BenchmarkEvaluateAdminOverride(b *testing.B) {
	ctx := context.Background()
	h := NewHierarchy()
	h.Admin().AddMember(42)
	_, bottom := buildChain(h, 10)
	update := UserUpdate(42)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !bottom.Evaluate(ctx, update) {
			b.Fatal("expected allow")
		}
	}
}

// BenchmarkSnapshotMarshal benchmarks serializing a registry of 50 roles.
func BenchmarkSnapshotMarshal(b *testing.B) {
	h := NewHierarchy()
	reg := NewRegistry(h)
	for i := range 50 {
		if _, err := reg.AddRole(fmt.Sprintf("role-%d", i), WithMembers(int64(i))); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reg.MarshalBinary(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSnapshotRestore benchmarks rebuilding a registry of 50 roles.
func BenchmarkSnapshotRestore(b *testing.B) {
	h := NewHierarchy()
	reg := NewRegistry(h)
	for i := range 50 {
		if _, err := reg.AddRole(fmt.Sprintf("role-%d", i), WithMembers(int64(i))); err != nil {
			b.Fatal(err)
		}
	}
	data, err := reg.MarshalBinary()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RestoreRegistry(NewHierarchy(), data); err != nil {
			b.Fatal(err)
		}
	}
}
