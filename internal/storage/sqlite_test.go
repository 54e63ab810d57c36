package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/gamedata"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "saves", "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(t *testing.T, name string) entity.Record {
	t.Helper()
	p, err := gamedata.MustLoadCatalog().NewPlayer(name, "warrior")
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	return p.ToRecord()
}

func TestStoreOpenCreatesDirectories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndLoadRecord(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	rec := testRecord(t, "Ada")
	if err := store.SaveRecord(ctx, "main", Save{Record: rec, Tier: 2, Turn: 57}); err != nil {
		t.Fatalf("SaveRecord() failed: %v", err)
	}

	got, err := store.LoadRecord(ctx, "main")
	if err != nil {
		t.Fatalf("LoadRecord() failed: %v", err)
	}
	if got.RunID == uuid.Nil {
		t.Error("a new run id was not assigned")
	}
	if got.Tier != 2 || got.Turn != 57 {
		t.Errorf("tier/turn = %d/%d, want 2/57", got.Tier, got.Turn)
	}
	if !reflect.DeepEqual(got.Record, rec) {
		t.Errorf("record mismatch:\n got %+v\nwant %+v", got.Record, rec)
	}
}

func TestSaveRecordOverwritesSlot(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	run := uuid.New()

	first := testRecord(t, "Ada")
	if err := store.SaveRecord(ctx, "main", Save{RunID: run, Record: first, Tier: 1}); err != nil {
		t.Fatal(err)
	}
	second := first
	second.Level = 4
	if err := store.SaveRecord(ctx, "main", Save{RunID: run, Record: second, Tier: 3}); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadRecord(ctx, "main")
	if err != nil {
		t.Fatal(err)
	}
	if got.RunID != run {
		t.Errorf("RunID = %v, want %v", got.RunID, run)
	}
	if got.Record.Level != 4 || got.Tier != 3 {
		t.Errorf("level/tier = %d/%d, want 4/3", got.Record.Level, got.Tier)
	}

	slots, err := store.ListSlots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 {
		t.Errorf("ListSlots() returned %d slots, want 1", len(slots))
	}
}

func TestListSlots(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if slots, err := store.ListSlots(ctx); err != nil || len(slots) != 0 {
		t.Fatalf("empty store: %v, %v", slots, err)
	}

	for _, name := range []string{"Ada", "Brienne"} {
		if err := store.SaveRecord(ctx, name, Save{Record: testRecord(t, name), Tier: 1, Turn: 3}); err != nil {
			t.Fatal(err)
		}
	}

	slots, err := store.ListSlots(ctx)
	if err != nil {
		t.Fatalf("ListSlots() failed: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("ListSlots() returned %d slots, want 2", len(slots))
	}
	for _, sl := range slots {
		if sl.Player != sl.Name {
			t.Errorf("slot %q has player %q", sl.Name, sl.Player)
		}
		if sl.Profession != "warrior" || sl.Level != 1 || sl.Turn != 3 {
			t.Errorf("slot %q = %+v", sl.Name, sl)
		}
		if sl.SavedAt.IsZero() || sl.RunID == uuid.Nil {
			t.Errorf("slot %q missing metadata: %+v", sl.Name, sl)
		}
	}
}

func TestMissingSlot(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.LoadRecord(ctx, "nope"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("LoadRecord() error = %v, want ErrSlotNotFound", err)
	}
	if err := store.DeleteSlot(ctx, "nope"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("DeleteSlot() error = %v, want ErrSlotNotFound", err)
	}
}

func TestDeleteSlot(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.SaveRecord(ctx, "main", Save{Record: testRecord(t, "Ada")}); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteSlot(ctx, "main"); err != nil {
		t.Fatalf("DeleteSlot() failed: %v", err)
	}
	if _, err := store.LoadRecord(ctx, "main"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("slot still loads after delete: %v", err)
	}
}
