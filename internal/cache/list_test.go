package cache

import (
	"sync"
	"testing"
)

type rec struct {
	id   string
	hits int
}

func byID(id string) func(rec) bool {
	return func(r rec) bool { return r.id == id }
}

func TestListAppendConcatenatesInServerOrder(t *testing.T) {
	var l List[rec]
	l.Begin()
	if l.Status() != Loading {
		t.Fatalf("expected loading, got %s", l.Status())
	}
	l.Append([]rec{{id: "a"}, {id: "b"}})
	l.Append([]rec{{id: "b"}, {id: "c"}})

	items := l.Items()
	if len(items) != 4 {
		t.Fatalf("expected duplicates kept, got %d items", len(items))
	}
	if items[0].id != "a" || items[3].id != "c" {
		t.Fatalf("unexpected order %+v", items)
	}
	if l.Status() != Idle {
		t.Fatalf("expected idle after append, got %s", l.Status())
	}
	if last := l.Last(); last == nil || last.id != "c" {
		t.Fatalf("expected cursor c, got %+v", last)
	}
}

func TestListReplaceAndClear(t *testing.T) {
	var l List[rec]
	l.Append([]rec{{id: "a"}, {id: "b"}})
	l.Replace([]rec{{id: "z"}})
	if l.Len() != 1 || l.Items()[0].id != "z" {
		t.Fatalf("expected replaced items, got %+v", l.Items())
	}
	l.Clear()
	if l.Len() != 0 || l.Last() != nil {
		t.Fatalf("expected empty list after clear")
	}
}

func TestListFailKeepsDataAndReturnsToIdle(t *testing.T) {
	var l List[rec]
	l.Append([]rec{{id: "a"}})
	l.Begin()
	l.Fail()
	if l.Status() != Idle {
		t.Fatalf("expected idle after failure, got %s", l.Status())
	}
	if l.Len() != 1 {
		t.Fatalf("expected data kept after failure")
	}
}

func TestListUpdatePatchesEveryMatch(t *testing.T) {
	var l List[rec]
	l.Append([]rec{{id: "a"}, {id: "b"}, {id: "a"}})
	n := l.Update(byID("a"), func(r *rec) { r.hits++ })
	if n != 2 {
		t.Fatalf("expected 2 updates, got %d", n)
	}
	for _, r := range l.Items() {
		if r.id == "a" && r.hits != 1 {
			t.Fatalf("expected patched item, got %+v", r)
		}
		if r.id == "b" && r.hits != 0 {
			t.Fatalf("unexpected patch of %+v", r)
		}
	}
}

func TestListRemoveFilters(t *testing.T) {
	var l List[rec]
	l.Append([]rec{{id: "a"}, {id: "b"}, {id: "a"}, {id: "c"}})
	if n := l.Remove(byID("a")); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	items := l.Items()
	if len(items) != 2 || items[0].id != "b" || items[1].id != "c" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestListItemsIsACopy(t *testing.T) {
	var l List[rec]
	l.Append([]rec{{id: "a"}})
	items := l.Items()
	items[0].id = "mutated"
	if l.Items()[0].id != "a" {
		t.Fatalf("snapshot leaked internal storage")
	}
}

func TestListConcurrentAppends(t *testing.T) {
	var l List[rec]
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Begin()
			l.Append([]rec{{id: "x"}})
		}()
	}
	wg.Wait()
	if l.Len() != 50 {
		t.Fatalf("expected 50 items, got %d", l.Len())
	}
}
