package roster

import "testing"

func TestPool_FirstUnused(t *testing.T) {
	pool := NewSubcontractorPool([]string{"EXT-1", "EXT-2"}, PolicyFirstUnused)
	for _, want := range []string{"EXT-1", "EXT-2"} {
		id, ok := pool.Next()
		if !ok || id != want {
			t.Fatalf("got (%q, %v), want (%q, true)", id, ok, want)
		}
	}
	// exhaustion is terminal
	for i := 0; i < 3; i++ {
		if id, ok := pool.Next(); ok {
			t.Fatalf("exhausted pool returned %q", id)
		}
	}
}

func TestPool_RoundRobin(t *testing.T) {
	pool := NewSubcontractorPool([]string{"EXT-1", "EXT-2"}, PolicyRoundRobin)
	want := []string{"EXT-1", "EXT-2", "EXT-1", "EXT-2", "EXT-1"}
	for i, w := range want {
		id, ok := pool.Next()
		if !ok || id != w {
			t.Fatalf("call %d: got (%q, %v), want (%q, true)", i, id, ok, w)
		}
	}
}

func TestPool_Empty(t *testing.T) {
	for _, policy := range []PoolPolicy{PolicyFirstUnused, PolicyRoundRobin} {
		pool := NewSubcontractorPool(nil, policy)
		if id, ok := pool.Next(); ok {
			t.Fatalf("%s: empty pool returned %q", policy, id)
		}
	}
}

func TestParsePoolPolicy(t *testing.T) {
	if p, err := ParsePoolPolicy(""); err != nil || p != PolicyFirstUnused {
		t.Errorf("empty string should default to first_unused")
	}
	if p, err := ParsePoolPolicy("round_robin"); err != nil || p != PolicyRoundRobin {
		t.Errorf("round_robin not parsed: %v %v", p, err)
	}
	if _, err := ParsePoolPolicy("random"); err == nil {
		t.Error("unknown policy must fail")
	}
}
