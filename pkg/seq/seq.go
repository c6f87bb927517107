// Package seq is the runtime the emitted pipelines reference: iterator
// adaptors over the standard iter.Seq. Generated code only ranges over
// Values; the remaining adaptors are the consumer-side vocabulary for
// working with the produced sequences.
package seq

import "iter"

// Values returns a sequence over the elements of a slice, in order.
// This is the source adaptor every generated loop ranges over.
func Values[S ~[]E, E any](s S) iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// Collect materializes a sequence into a slice.
func Collect[E any](s iter.Seq[E]) []E {
	var out []E
	for v := range s {
		out = append(out, v)
	}
	return out
}

// Map applies f to every element.
func Map[A, B any](s iter.Seq[A], f func(A) B) iter.Seq[B] {
	return func(yield func(B) bool) {
		for v := range s {
			if !yield(f(v)) {
				return
			}
		}
	}
}

// Filter keeps the elements for which pred holds.
func Filter[E any](s iter.Seq[E], pred func(E) bool) iter.Seq[E] {
	return func(yield func(E) bool) {
		for v := range s {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

// FlatMap maps every element to a sequence and flattens the results into
// one sequence, preserving order.
func FlatMap[A, B any](s iter.Seq[A], f func(A) iter.Seq[B]) iter.Seq[B] {
	return func(yield func(B) bool) {
		for v := range s {
			for w := range f(v) {
				if !yield(w) {
					return
				}
			}
		}
	}
}

// Take stops a sequence after n elements.
func Take[E any](s iter.Seq[E], n int) iter.Seq[E] {
	return func(yield func(E) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for v := range s {
			if !yield(v) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}
