package assets

import (
	"sync"
	"testing"
)

func TestAssetSet(t *testing.T) {
	s := NewAssetSet()

	if !s.Add(NewAssetReference(handle("b.css"))) {
		t.Error("Add(b.css) = false")
	}
	if !s.Add(NewAssetReference(handle("a.css"))) {
		t.Error("Add(a.css) = false")
	}
	if s.Add(NewAssetReference(handle("b.css"))) {
		t.Error("Add(b.css) twice = true")
	}

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Has("a.css") || s.Has("c.css") {
		t.Error("Has() mismatch")
	}

	all := s.All()
	if len(all) != 2 || all[0].ModulePath != "b.css" || all[1].ModulePath != "a.css" {
		t.Errorf("All() = %v, want insertion order", all)
	}

	s.Reset()
	if s.Len() != 0 || len(s.All()) != 0 {
		t.Error("Reset() did not clear the set")
	}
}

func TestAssetSetConcurrent(t *testing.T) {
	s := NewAssetSet()
	var wg sync.WaitGroup
	var mu sync.Mutex
	added := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Add(NewAssetReference(handle("shared.css"))) {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if added != 1 {
		t.Errorf("%d goroutines added the same reference, want 1", added)
	}
}
