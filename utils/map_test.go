package utils

import "testing"

type intKey int

func (k intKey) HashCode() uint64 {
	// collide on purpose so buckets hold more than one entry
	return uint64(k % 2)
}

func (k intKey) EqualI(o Hashable) bool {
	return k == o.(intKey)
}

func TestMap(t *testing.T) {
	m := make(Map)
	m.Set(intKey(1), "a")
	m.Set(intKey(3), "b")
	m.Set(intKey(1), "c")

	if v, ok := m.Find(intKey(1)); !ok || v != "c" {
		t.Fatalf("got %v %v", v, ok)
	}
	if v, ok := m.Find(intKey(3)); !ok || v != "b" {
		t.Fatalf("got %v %v", v, ok)
	}
	if _, ok := m.Find(intKey(5)); ok {
		t.Fatal("key 5 should be absent")
	}

	if v := m.Add(intKey(3), "d"); v != "b" {
		t.Fatalf("Add must keep the existing value, got %v", v)
	}
	if v := m.Add(intKey(5), "e"); v != "e" {
		t.Fatalf("got %v", v)
	}
}

func TestNextPowerOfTwoExp(t *testing.T) {
	for _, tc := range []struct{ x, k int }{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {16, 4}, {17, 5},
	} {
		if got := NextPowerOfTwoExp(tc.x); got != tc.k {
			t.Fatalf("NextPowerOfTwoExp(%d) = %d, want %d", tc.x, got, tc.k)
		}
	}
}
