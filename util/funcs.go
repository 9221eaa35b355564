package util

import (
	"iter"

	"github.com/hashicorp/go-set/v3"
)

func MapIter[A, B any](iter iter.Seq[A], f func(A) B) iter.Seq[B] {
	return func(yield func(B) bool) {
		for v := range iter {
			if !yield(f(v)) {
				return
			}
		}
	}
}

// FilterMapIter yields f(v) for every v of iter for which f returns true.
func FilterMapIter[A, B any](iter iter.Seq[A], f func(A) (B, bool)) iter.Seq[B] {
	return func(yield func(B) bool) {
		for v := range iter {
			mapped, ok := f(v)
			if !ok {
				continue
			}
			if !yield(mapped) {
				return
			}
		}
	}
}

func CountIter[A any](iter iter.Seq[A]) int {
	n := 0
	for range iter {
		n++
	}
	return n
}

func SetFromSeq[V comparable](s iter.Seq[V], size int) *set.Set[V] {
	newSet := set.New[V](size)
	for item := range s {
		newSet.Insert(item)
	}
	return newSet
}
