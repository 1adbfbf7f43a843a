package cache

import "testing"

func TestItemSetUpdateClear(t *testing.T) {
	var it Item[rec]
	if it.Get() != nil {
		t.Fatalf("expected empty item")
	}
	it.Begin()
	if it.Snapshot().Status != Loading {
		t.Fatalf("expected loading")
	}
	it.Set(&rec{id: "a"})

	if ok := it.Update(byID("b"), func(r *rec) { r.hits = 9 }); ok {
		t.Fatalf("update should not apply to a different record")
	}
	if ok := it.Update(byID("a"), func(r *rec) { r.hits = 3 }); !ok {
		t.Fatalf("expected update to apply")
	}
	if got := it.Get(); got == nil || got.hits != 3 {
		t.Fatalf("unexpected item %+v", got)
	}

	if it.ClearIf(byID("b")) {
		t.Fatalf("clear should not apply to a different record")
	}
	if !it.ClearIf(byID("a")) || it.Get() != nil {
		t.Fatalf("expected item cleared")
	}
}

func TestItemGetReturnsCopy(t *testing.T) {
	var it Item[rec]
	it.Set(&rec{id: "a"})
	got := it.Get()
	got.id = "changed"
	if it.Get().id != "a" {
		t.Fatalf("item leaked internal pointer")
	}
}

func TestFlagLifecycle(t *testing.T) {
	var f Flag
	if f.Status() != Idle {
		t.Fatalf("zero flag should be idle")
	}
	f.Begin()
	if f.Status() != Loading {
		t.Fatalf("expected loading")
	}
	f.End()
	if f.Status() != Idle {
		t.Fatalf("expected idle")
	}
}
