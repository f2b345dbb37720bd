package state

import (
	"errors"
	"reflect"
	"slices"
	"sync"
	"testing"
	"time"
)

func TestStore_PutAndSnapshotClone(t *testing.T) {
	s := NewStore[string](slices.Clone[[]string])
	s.Reset(2)

	before := time.Now()
	s.Put("a.txt", []string{"one", "two"})

	snap := s.Snapshot()
	if got := snap.Data["a.txt"]; !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("snapshot data = %#v, want [one two]", got)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.Done != 1 || snap.Expected != 2 || snap.Complete() {
		t.Fatalf("progress = %d/%d complete=%v, want 1/2 false", snap.Done, snap.Expected, snap.Complete())
	}

	// The snapshot must be independent of the stored value.
	snap.Data["a.txt"][0] = "changed"
	again := s.Snapshot()
	if again.Data["a.txt"][0] != "one" {
		t.Fatalf("Snapshot should clone values; got %q want one", again.Data["a.txt"][0])
	}
}

func TestStore_PutClonesInput(t *testing.T) {
	s := NewStore[string](slices.Clone[[]string])
	in := []string{"x"}
	s.Put("k", in)
	in[0] = "y"
	if got, _ := s.Get("k"); got[0] != "x" {
		t.Fatalf("Get = %q, want x", got)
	}
}

func TestStore_HasNewData(t *testing.T) {
	s := NewStore[int, int](nil)
	if s.HasNewData() {
		t.Fatal("empty store should have nothing new")
	}
	s.Put(1, 10)
	if !s.HasNewData() {
		t.Fatal("Put should be visible as new data")
	}
	s.Snapshot()
	if s.HasNewData() {
		t.Fatal("Snapshot should mark data seen")
	}
	s.Fail(2, errors.New("boom"))
	if !s.HasNewData() {
		t.Fatal("Fail should be visible as new data")
	}
}

func TestStore_HasAllData(t *testing.T) {
	s := NewStore[string, int](nil)
	if s.HasAllData() {
		t.Fatal("no load started means not complete")
	}
	s.Reset(3)
	s.Put("a", 1)
	s.Fail("b", errors.New("denied"))
	if s.HasAllData() {
		t.Fatal("2 of 3 is not complete")
	}
	s.Put("c", 3)
	if !s.HasAllData() {
		t.Fatal("3 of 3 should be complete")
	}
	snap := s.Snapshot()
	if snap.Fraction() != 1 || !snap.Complete() {
		t.Fatalf("fraction = %v complete = %v, want 1 true", snap.Fraction(), snap.Complete())
	}
}

func TestStore_EmptyLoadIsComplete(t *testing.T) {
	s := NewStore[string, int](nil)
	if snap := s.Snapshot(); snap.Complete() || snap.Fraction() != 0 {
		t.Fatalf("before Reset: complete = %v fraction = %v, want false 0", snap.Complete(), snap.Fraction())
	}
	s.Reset(0)
	if !s.HasAllData() {
		t.Fatal("a load expecting nothing should be complete")
	}
	if !s.HasNewData() {
		t.Fatal("Reset should be visible as new data")
	}
	snap := s.Snapshot()
	if !snap.Complete() || snap.Fraction() != 1 || snap.Done != 0 {
		t.Fatalf("snapshot = %+v, want complete with fraction 1", snap)
	}
}

func TestStore_FailKeepsData(t *testing.T) {
	s := NewStore[string, int](nil)
	s.Reset(1)
	s.Put("a", 1)
	origErr := errors.New("boom")
	s.Fail("a", origErr)

	snap := s.Snapshot()
	if snap.Data["a"] != 1 {
		t.Fatalf("data = %d, want 1 kept after failure", snap.Data["a"])
	}
	if snap.Done != 1 {
		t.Fatalf("Done = %d, want 1 (a key counts once)", snap.Done)
	}
	err := snap.Errors["a"]
	if err == nil || err.Error() != "boom" || !errors.Is(err, origErr) {
		t.Fatalf("error = %v, want boom wrapping the original", err)
	}
	if reflect.ValueOf(err).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatal("Snapshot should copy the error value")
	}

	s.Put("a", 2)
	if snap := s.Snapshot(); len(snap.Errors) != 0 {
		t.Fatalf("errors = %v, want cleared by Put", snap.Errors)
	}
}

func TestStore_ResetClears(t *testing.T) {
	s := NewStore[string, int](nil)
	s.Put("a", 1)
	s.Reset(5)
	if keys := s.Keys(); len(keys) != 0 {
		t.Fatalf("keys = %v, want none after Reset", keys)
	}
	if snap := s.Snapshot(); snap.Expected != 5 || snap.Fraction() != 0 {
		t.Fatalf("snapshot = %+v, want expected 5 and fraction 0", snap)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore[int, int](nil)
	s.Reset(100)
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Put(i, i*i)
		}()
	}
	done := make(chan struct{})
	go func() {
		for !s.HasAllData() {
			_ = s.Snapshot()
		}
		close(done)
	}()
	wg.Wait()
	<-done
	if snap := s.Snapshot(); len(snap.Data) != 100 {
		t.Fatalf("data = %d entries, want 100", len(snap.Data))
	}
}
