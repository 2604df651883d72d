package bmap

import (
	"errors"
	"slices"
	"testing"
)

func TestListInsertAndRemove(t *testing.T) {
	var l List[int]
	for _, v := range []int{1, 2, 4} {
		if err := l.Append(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := l.Insert(2, 3); err != nil {
		t.Fatal(err)
	}
	if err := l.Insert(0, 0); err != nil {
		t.Fatal(err)
	}
	if got := l.All(); !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("All = %v", got)
	}

	if err := l.Remove(1); err != nil {
		t.Fatal(err)
	}
	if got := l.All(); !slices.Equal(got, []int{0, 2, 3, 4}) {
		t.Errorf("after Remove(1) = %v", got)
	}
	if l.items[4] != 0 {
		t.Error("Remove should clear the vacated slot")
	}

	if err := l.Remove(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Remove(4) = %v", err)
	}
	if err := l.Insert(6, 9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Insert(6) = %v", err)
	}
	if err := l.Set(-1, 9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Set(-1) = %v", err)
	}
}

func TestListFull(t *testing.T) {
	var l List[int]
	for i := 0; i < MaxObjects; i++ {
		if err := l.Append(i); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	if err := l.Append(99); !errors.Is(err, ErrListFull) {
		t.Errorf("expected ErrListFull, got %v", err)
	}
	if err := l.Insert(0, 99); !errors.Is(err, ErrListFull) {
		t.Errorf("expected ErrListFull, got %v", err)
	}

	if err := l.Remove(MaxObjects - 1); err != nil {
		t.Fatal(err)
	}
	if err := l.Insert(0, 99); err != nil {
		t.Fatal(err)
	}
	if l.At(0) != 99 || l.At(MaxObjects-1) != MaxObjects-2 {
		t.Errorf("All = %v", l.All())
	}
}

func TestListRemoveFunc(t *testing.T) {
	var l List[int]
	for i := 0; i < 10; i++ {
		l.Append(i)
	}

	n := l.RemoveFunc(func(v int) bool { return v%3 == 0 })
	if n != 4 {
		t.Errorf("removed %d, want 4", n)
	}
	if got := l.All(); !slices.Equal(got, []int{1, 2, 4, 5, 7, 8}) {
		t.Errorf("All = %v", got)
	}

	l.Clear()
	if l.Len() != 0 || l != (List[int]{}) {
		t.Error("Clear should leave the zero list")
	}
}

func TestListAtPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected At to panic")
		}
	}()
	var l List[int]
	l.At(0)
}
