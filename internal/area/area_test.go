package area

import "testing"

type res struct{ name string }

func (r res) Name() string { return r.name }

func TestFetchLocalThenUpstream(t *testing.T) {
	up := New[res]()
	_ = up.Push(res{"a"})
	local := Chained(up)
	_ = local.Push(res{"b"})

	if v, ok := local.Fetch("a", false); !ok || v.name != "a" {
		t.Errorf("Fetch(a) = %v, %v", v, ok)
	}
	if v, ok := local.Fetch("b", false); !ok || v.name != "b" {
		t.Errorf("Fetch(b) = %v, %v", v, ok)
	}
	if _, ok := local.Fetch("a", true); ok {
		t.Error("Fetch(a, localOnly=true) should miss")
	}
}

func TestPushRejectsCollision(t *testing.T) {
	a := New[res]()
	if err := a.Push(res{"x"}); err != nil {
		t.Fatalf("first push: %v", err)
	}
	if err := a.Push(res{"x"}); err == nil {
		t.Error("expected error on duplicate local push")
	}
}

func TestPushRejectsUpstreamCollision(t *testing.T) {
	up := New[res]()
	_ = up.Push(res{"x"})
	local := Chained(up)
	if err := local.Push(res{"x"}); err == nil {
		t.Error("expected error pushing a name already committed upstream")
	}
}

func TestCommitMergesAndEmptiesLocal(t *testing.T) {
	up := New[res]()
	local := Chained(up)
	_ = local.Push(res{"x"})
	_ = local.Push(res{"y"})

	if err := local.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if local.Len() != 0 {
		t.Errorf("local.Len() = %d, want 0 after commit", local.Len())
	}
	if _, ok := up.Fetch("x", true); !ok {
		t.Error("x not found upstream after commit")
	}
	if _, ok := up.Fetch("y", true); !ok {
		t.Error("y not found upstream after commit")
	}
}

func TestCommitPreconditionViolation(t *testing.T) {
	up := New[res]()
	_ = up.Push(res{"x"})
	local := Chained(up)
	_ = local.Push(res{"x"})
	// bypass Push's own collision check by constructing a fresh conflicting local
	local2 := Chained(up)
	local2.local["x"] = res{"x"}

	if err := local2.Commit(); err == nil {
		t.Error("expected commit precondition violation")
	}
	if local2.Len() != 1 {
		t.Error("failed commit must leave local untouched")
	}
}

func TestDiscardClearsLocal(t *testing.T) {
	a := New[res]()
	_ = a.Push(res{"x"})
	a.Discard(false)
	if a.Len() != 0 {
		t.Errorf("Len() = %d after discard, want 0", a.Len())
	}
}

func TestValuesReturnsLocalOnly(t *testing.T) {
	up := New[res]()
	_ = up.Push(res{"a"})
	local := Chained(up)
	_ = local.Push(res{"b"})
	_ = local.Push(res{"c"})

	vals := local.Values()
	if len(vals) != 2 {
		t.Fatalf("Values() = %v, want 2 entries", vals)
	}
	seen := map[string]bool{}
	for _, v := range vals {
		seen[v.name] = true
	}
	if !seen["b"] || !seen["c"] || seen["a"] {
		t.Errorf("Values() = %v, want exactly {b, c}", vals)
	}
}

func TestDiscardPropagatesUpstream(t *testing.T) {
	up := New[res]()
	_ = up.Push(res{"x"})
	local := Chained(up)
	local.Discard(true)
	if up.Len() != 0 {
		t.Error("propagate=true should also clear upstream")
	}
}
