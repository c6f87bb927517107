package seq_test

import (
	"iter"
	"reflect"
	"testing"

	"github.com/ShihHsuanChen/gocomp/pkg/seq"
)

func TestValuesOrder(t *testing.T) {
	got := seq.Collect(seq.Values([]int{3, 1, 2}))
	if !reflect.DeepEqual(got, []int{3, 1, 2}) {
		t.Errorf("expected source order preserved, got %v", got)
	}
}

func TestMapFilterFlatMap(t *testing.T) {
	nums := seq.Values([]int{1, 2, 3, 4})

	doubled := seq.Collect(seq.Map(nums, func(n int) int { return n * 2 }))
	if !reflect.DeepEqual(doubled, []int{2, 4, 6, 8}) {
		t.Errorf("Map: got %v", doubled)
	}

	evens := seq.Collect(seq.Filter(nums, func(n int) bool { return n%2 == 0 }))
	if !reflect.DeepEqual(evens, []int{2, 4}) {
		t.Errorf("Filter: got %v", evens)
	}

	repeated := seq.Collect(seq.FlatMap(seq.Values([]int{1, 2}), func(n int) iter.Seq[int] {
		return seq.Values([]int{n, n * 10})
	}))
	if !reflect.DeepEqual(repeated, []int{1, 10, 2, 20}) {
		t.Errorf("FlatMap: got %v", repeated)
	}
}

func TestTakeIsLazy(t *testing.T) {
	evaluated := 0
	counted := seq.Map(seq.Values([]int{1, 2, 3, 4, 5}), func(n int) int {
		evaluated++
		return n
	})

	got := seq.Collect(seq.Take(counted, 2))
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Take: got %v", got)
	}
	if evaluated != 2 {
		t.Errorf("expected 2 evaluations, got %d", evaluated)
	}
}

// The tests below run the exact pipeline shapes the emitter generates,
// pinned here as compiled code so the lowering semantics are executed,
// not just compared as text.

func TestGeneratedShapeFilterMap(t *testing.T) {
	// x * 2 for x in xs if x > 0
	xs := []int{-1, 2, -3, 4}
	got := seq.Collect(iter.Seq[any](func(yield func(any) bool) {
		for x := range seq.Values(xs) {
			if !(x > 0) {
				continue
			}
			if !yield(x * 2) {
				return
			}
		}
	}))
	if !reflect.DeepEqual(got, []any{4, 8}) {
		t.Errorf("expected [4 8], got %v", got)
	}
}

func TestGeneratedShapeTuplePattern(t *testing.T) {
	// x / y for x, y in pairs if y != 0
	pairs := [][2]int{{10, 2}, {5, 0}, {9, 3}}
	got := seq.Collect(iter.Seq[any](func(yield func(any) bool) {
		for __e0 := range seq.Values(pairs) {
			x, y := __e0[0], __e0[1]
			if !(y != 0) {
				continue
			}
			if !yield(x / y) {
				return
			}
		}
	}))
	if !reflect.DeepEqual(got, []any{5, 3}) {
		t.Errorf("expected [5 3], got %v", got)
	}
}

func TestGeneratedShapeNestedClauses(t *testing.T) {
	// x + y for x in []int{1, 2} for y in []int{10, 20}
	// The outer clause varies slowest: row-major enumeration order.
	got := seq.Collect(iter.Seq[any](func(yield func(any) bool) {
		for x := range seq.Values([]int{1, 2}) {
			for y := range seq.Values([]int{10, 20}) {
				if !yield(x + y) {
					return
				}
			}
		}
	}))
	if !reflect.DeepEqual(got, []any{11, 21, 12, 22}) {
		t.Errorf("expected [11 21 12 22], got %v", got)
	}
}

func TestGeneratedShapeShortCircuitGuard(t *testing.T) {
	// x for x in xs if x != 0 if 10/x > 2
	// The second filter would divide by zero unless the first one
	// short-circuits it.
	xs := []int{0, 1, 5}
	got := seq.Collect(iter.Seq[any](func(yield func(any) bool) {
		for x := range seq.Values(xs) {
			if !((x != 0) && (10/x > 2)) {
				continue
			}
			if !yield(x) {
				return
			}
		}
	}))
	if !reflect.DeepEqual(got, []any{1}) {
		t.Errorf("expected [1], got %v", got)
	}
}

func TestGeneratedShapeIsLazy(t *testing.T) {
	evaluated := 0
	xs := []int{1, 2, 3, 4, 5}
	pipeline := iter.Seq[any](func(yield func(any) bool) {
		for x := range seq.Values(xs) {
			evaluated++
			if !yield(x * 2) {
				return
			}
		}
	})

	got := seq.Collect(seq.Take(pipeline, 2))
	if !reflect.DeepEqual(got, []any{2, 4}) {
		t.Errorf("expected [2 4], got %v", got)
	}
	if evaluated != 2 {
		t.Errorf("pipeline was not lazy: %d elements evaluated", evaluated)
	}
}
