package bmap

import "fmt"

// MaxObjects is the capacity of every object list.
const MaxObjects = 16

// List is an ordered, fixed-capacity sequence of map objects. The zero
// value is an empty list.
type List[T any] struct {
	items [MaxObjects]T
	n     int
}

// Len returns the number of objects in the list.
func (l *List[T]) Len() int { return l.n }

// At returns the object at index i. It panics if i is out of range.
func (l *List[T]) At(i int) T {
	if i < 0 || i >= l.n {
		panic(fmt.Sprintf("bmap: index %d out of range [0,%d)", i, l.n))
	}
	return l.items[i]
}

// All returns a copy of the objects in order.
func (l *List[T]) All() []T {
	out := make([]T, l.n)
	copy(out, l.items[:l.n])
	return out
}

// Set replaces the object at index i.
func (l *List[T]) Set(i int, v T) error {
	if i < 0 || i >= l.n {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	l.items[i] = v
	return nil
}

// Append adds v to the end of the list.
func (l *List[T]) Append(v T) error {
	return l.Insert(l.n, v)
}

// Insert places v at index i, shifting later objects up.
func (l *List[T]) Insert(i int, v T) error {
	if l.n == MaxObjects {
		return ErrListFull
	}
	if i < 0 || i > l.n {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	copy(l.items[i+1:l.n+1], l.items[i:l.n])
	l.items[i] = v
	l.n++
	return nil
}

// Remove deletes the object at index i and closes the gap.
func (l *List[T]) Remove(i int) error {
	if i < 0 || i >= l.n {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	copy(l.items[i:l.n-1], l.items[i+1:l.n])
	l.n--
	var zero T
	l.items[l.n] = zero
	return nil
}

// RemoveFunc deletes every object for which del returns true and reports
// how many were removed.
func (l *List[T]) RemoveFunc(del func(T) bool) int {
	removed := 0
	for i := 0; i < l.n; {
		if del(l.items[i]) {
			l.Remove(i)
			removed++
			continue
		}
		i++
	}
	return removed
}

// Clear empties the list.
func (l *List[T]) Clear() {
	*l = List[T]{}
}

// setAll replaces the contents with items, which must fit.
func (l *List[T]) setAll(items []T) {
	l.Clear()
	l.n = copy(l.items[:], items)
}
