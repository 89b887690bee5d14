package cache

import "testing"

func TestEstimateSize_Scalars(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int64
	}{
		{"nil", nil, 0},
		{"bool", true, 1},
		{"int8", int8(1), 1},
		{"int16", int16(1), 2},
		{"int32", int32(1), 4},
		{"int", 1, 8},
		{"int64", int64(1), 8},
		{"float32", float32(1.5), 4},
		{"float64", 1.5, 8},
		{"complex128", complex(1, 2), 16},
		{"string", "hello", 5},
		{"bytes", []byte("hello!"), 6},
	}

	for _, tc := range cases {
		if got := EstimateSize(tc.in); got != tc.want {
			t.Errorf("EstimateSize(%s) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestEstimateSize_Containers(t *testing.T) {
	m := map[string]any{
		"name":  "widget",
		"count": 3,
		"tags":  []any{"a", "bb"},
	}

	got := EstimateSize(m)

	// Map overhead + keys (4+5+4=13) + "widget"(6) + int(8) +
	// slice overhead + interface boxes + "a"(1) + "bb"(2).
	if got < int64(2*containerOverhead) {
		t.Errorf("nested container estimate %d too small", got)
	}

	flat := EstimateSize(map[string]any{"name": "widget"})
	if got <= flat {
		t.Errorf("larger container should estimate larger: %d <= %d", got, flat)
	}
}

func TestEstimateSize_Struct(t *testing.T) {
	type payload struct {
		ID    int64
		Label string
	}

	got := EstimateSize(payload{ID: 7, Label: "abc"})
	want := int64(containerOverhead + 8 + 3)
	if got != want {
		t.Errorf("EstimateSize(struct) = %d, want %d", got, want)
	}
}

func TestEstimateSize_CyclicValueTerminates(t *testing.T) {
	type node struct {
		Next *node
		Data string
	}

	a := &node{Data: "a"}
	b := &node{Data: "b", Next: a}
	a.Next = b // cycle

	// Must terminate and return something non-negative.
	if got := EstimateSize(a); got < 0 {
		t.Errorf("cyclic estimate should be non-negative, got %d", got)
	}

	cyclic := map[string]any{}
	cyclic["self"] = cyclic
	if got := EstimateSize(cyclic); got < 0 {
		t.Errorf("cyclic map estimate should be non-negative, got %d", got)
	}
}

func TestEstimateSize_DeepNestingBounded(t *testing.T) {
	deep := "leaf"
	var v any = deep
	for i := 0; i < 100; i++ {
		v = []any{v}
	}

	// Recursion is depth-bounded, so this must return quickly with a
	// coarse estimate instead of walking all 100 levels.
	if got := EstimateSize(v); got <= 0 {
		t.Errorf("deeply nested estimate should be positive, got %d", got)
	}
}
