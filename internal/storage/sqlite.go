// Package storage keeps saved characters in named slots of a SQLite
// database, using the pure-Go modernc.org/sqlite driver.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/samdwyer/delve/internal/entity"
)

// ErrSlotNotFound is returned when loading or deleting an empty slot.
var ErrSlotNotFound = errors.New("storage: save slot not found")

// saved_at is stored in UTC with a fixed width so it sorts as text.
const savedAtLayout = "2006-01-02 15:04:05.000000000"

// Store is an open save database.
type Store struct {
	db *sql.DB
}

// Slot summarizes one saved character without decoding it.
type Slot struct {
	Name       string
	RunID      uuid.UUID
	Player     string
	Profession string
	Level      int
	Tier       int
	Turn       int
	SavedAt    time.Time
}

// Save is what a slot holds: the player record plus where the run stood.
type Save struct {
	RunID  uuid.UUID
	Record entity.Record
	Tier   int
	Turn   int
}

// Open creates or opens the database at dbPath, creating parent
// directories and the schema as needed.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS saves (
			slot       TEXT PRIMARY KEY,
			run_id     TEXT NOT NULL,
			player     TEXT NOT NULL,
			profession TEXT NOT NULL,
			level      INTEGER NOT NULL,
			tier       INTEGER NOT NULL,
			turn       INTEGER NOT NULL,
			record     TEXT NOT NULL,
			saved_at   TEXT NOT NULL
		);
	`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecord writes sv into slot, replacing whatever was there. A zero
// RunID starts a new run.
func (s *Store) SaveRecord(ctx context.Context, slot string, sv Save) error {
	if sv.RunID == uuid.Nil {
		sv.RunID = uuid.New()
	}
	data, err := json.Marshal(sv.Record)
	if err != nil {
		return fmt.Errorf("storage: cannot encode record: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saves (slot, run_id, player, profession, level, tier, turn, record, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
			run_id = excluded.run_id,
			player = excluded.player,
			profession = excluded.profession,
			level = excluded.level,
			tier = excluded.tier,
			turn = excluded.turn,
			record = excluded.record,
			saved_at = excluded.saved_at`,
		slot, sv.RunID.String(), sv.Record.Name, sv.Record.Profession, sv.Record.Level,
		sv.Tier, sv.Turn, string(data), time.Now().UTC().Format(savedAtLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %q: %w", slot, err)
	}
	return nil
}

// LoadRecord reads the save in slot.
func (s *Store) LoadRecord(ctx context.Context, slot string) (Save, error) {
	var (
		sv    Save
		runID string
		data  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, tier, turn, record FROM saves WHERE slot = ?`, slot,
	).Scan(&runID, &sv.Tier, &sv.Turn, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return Save{}, fmt.Errorf("%w: %q", ErrSlotNotFound, slot)
	}
	if err != nil {
		return Save{}, fmt.Errorf("storage: cannot load slot %q: %w", slot, err)
	}

	if sv.RunID, err = uuid.Parse(runID); err != nil {
		return Save{}, fmt.Errorf("storage: slot %q: bad run id: %w", slot, err)
	}
	if err := json.Unmarshal([]byte(data), &sv.Record); err != nil {
		return Save{}, fmt.Errorf("storage: slot %q: cannot decode record: %w", slot, err)
	}
	return sv, nil
}

// ListSlots returns every slot, most recently saved first.
func (s *Store) ListSlots(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, run_id, player, profession, level, tier, turn, saved_at
		 FROM saves
		 ORDER BY saved_at DESC, slot`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var (
			sl      Slot
			runID   string
			savedAt string
		)
		if err := rows.Scan(&sl.Name, &runID, &sl.Player, &sl.Profession, &sl.Level, &sl.Tier, &sl.Turn, &savedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		// A malformed id or timestamp leaves the zero value; the slot
		// still lists.
		sl.RunID, _ = uuid.Parse(runID)
		sl.SavedAt, _ = time.Parse(savedAtLayout, savedAt)
		slots = append(slots, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// DeleteSlot removes a save, e.g. once its character has died.
func (s *Store) DeleteSlot(ctx context.Context, slot string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("storage: cannot delete slot %q: %w", slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete slot %q: %w", slot, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrSlotNotFound, slot)
	}
	return nil
}
