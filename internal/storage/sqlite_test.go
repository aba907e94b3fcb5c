package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
	"github.com/vovakirdan/flapduel/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreBestScoresRoundTrip(t *testing.T) {
	store := openTestStore(t)

	best, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(best) != 0 {
		t.Errorf("Expected no best scores in a new database, got %v", best)
	}

	if err := store.Save(map[string]int{"single": 12, "two_player": 7}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	// Overwrite one mode, leave the other alone.
	if err := store.Save(map[string]int{"single": 30}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	best, err = store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if best["single"] != 30 || best["two_player"] != 7 || len(best) != 2 {
		t.Errorf("Unexpected best scores: %v", best)
	}
}

func TestStoreSaveNeverLowersBest(t *testing.T) {
	store := openTestStore(t)

	// Two sessions loaded the empty table. One stores 6, then the other,
	// still holding its stale copy, reports a lower 1.
	if err := store.Save(map[string]int{"single": 6}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Save(map[string]int{"single": 1, "ai_vs_ai": 4}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	best, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if best["single"] != 6 {
		t.Errorf("Best score regressed to %d, want 6", best["single"])
	}
	if best["ai_vs_ai"] != 4 {
		t.Errorf("New mode should still be stored, got %d", best["ai_vs_ai"])
	}
}

func TestStoreSharedBySessions(t *testing.T) {
	store := openTestStore(t)

	open := func() *session.Session {
		s, err := session.New(session.Options{
			Config:   config.DefaultFlappyConfig(),
			Store:    store,
			Recorder: store,
		})
		if err != nil {
			t.Fatalf("session.New() failed: %v", err)
		}
		return s
	}
	early := open()
	store.Save(map[string]int{"single": 6})
	late := open()

	if got := early.State().Best[session.ModeSingle]; got != 0 {
		t.Fatalf("Early session best = %d, want 0", got)
	}
	if got := late.State().Best[session.ModeSingle]; got != 6 {
		t.Errorf("Late session best = %d, want 6", got)
	}

	// The early session's view is stale; its write must not win.
	store.Save(map[string]int{"single": 1})
	if got, _ := store.BestScore("single"); got != 6 {
		t.Errorf("Stored best = %d after a stale write, want 6", got)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	// Never played
	high, err := store.BestScore("ai_vs_ai")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected best score of 0 for an unplayed mode, got %d", high)
	}

	store.Save(map[string]int{"ai_vs_ai": 88})
	high, err = store.BestScore("ai_vs_ai")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if high != 88 {
		t.Errorf("Expected best score of 88, got %d", high)
	}
}

func TestStoreRecordAndTopRounds(t *testing.T) {
	store := openTestStore(t)

	id := uuid.New()
	rounds := []session.RoundResult{
		{ID: id, Mode: session.ModeSingle, Lane: core.Lane1, Score: 100, Duration: 42 * time.Second},
		{Mode: session.ModeSingle, Lane: core.Lane1, Score: 50},
		{Mode: session.ModeSingle, Lane: core.Lane1, Score: 200},
		{Mode: session.ModeAIvsAI, Lane: core.Lane2, Score: 500, Pilot: "tracker"},
	}
	for _, r := range rounds {
		if err := store.RecordRound(r); err != nil {
			t.Fatalf("RecordRound() failed: %v", err)
		}
	}

	top, err := store.TopRounds("single", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(top))
	}

	// Should be sorted descending
	if top[0].Score != 200 || top[1].Score != 100 || top[2].Score != 50 {
		t.Errorf("Rounds not in expected order: %v", top)
	}
	if top[1].ID != id {
		t.Errorf("Round ID = %v, want %v", top[1].ID, id)
	}
	if top[1].Duration != 42*time.Second {
		t.Errorf("Duration = %v, want 42s", top[1].Duration)
	}
	if top[0].ID == uuid.Nil {
		t.Error("A round without an ID should get a generated one")
	}

	ai, err := store.TopRounds("ai_vs_ai", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(ai) != 1 || ai[0].Lane != 2 || ai[0].Pilot != "tracker" {
		t.Errorf("Unexpected ai_vs_ai rounds: %+v", ai)
	}
}

func TestStoreTopRoundsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.RecordRound(session.RoundResult{Mode: session.ModeTwoPlayer, Score: (i + 1) * 10})
	}

	// Request only top 3
	top, err := store.TopRounds("two_player", 3)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 rounds with limit, got %d", len(top))
	}
	if top[0].Score != 50 || top[1].Score != 40 || top[2].Score != 30 {
		t.Errorf("Rounds not in expected order: %v", top)
	}
}

func TestStoreClearMode(t *testing.T) {
	store := openTestStore(t)

	store.RecordRound(session.RoundResult{Mode: session.ModeSingle, Score: 3})
	store.RecordRound(session.RoundResult{Mode: session.ModePlayerVsAI, Score: 4})
	store.Save(map[string]int{"single": 3, "player_vs_ai": 4})

	if err := store.ClearMode("single"); err != nil {
		t.Fatalf("ClearMode() failed: %v", err)
	}

	single, _ := store.TopRounds("single", 10)
	if len(single) != 0 {
		t.Errorf("Expected 0 single rounds after clear, got %d", len(single))
	}
	best, _ := store.Load()
	if _, ok := best["single"]; ok {
		t.Error("Best score of the cleared mode should be gone")
	}

	// Other modes keep their data
	pvai, _ := store.TopRounds("player_vs_ai", 10)
	if len(pvai) != 1 || best["player_vs_ai"] != 4 {
		t.Error("Other modes should not be affected by clearing single")
	}
}

func TestStoreAllModeStats(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{2, 4, 9} {
		store.RecordRound(session.RoundResult{Mode: session.ModeSingle, Score: score})
	}
	store.RecordRound(session.RoundResult{Mode: session.ModeAIvsAI, Score: 20})

	stats, err := store.AllModeStats()
	if err != nil {
		t.Fatalf("AllModeStats() failed: %v", err)
	}
	single := stats["single"]
	if single == nil {
		t.Fatal("Missing stats for single")
	}
	if single.Rounds != 3 || single.HighScore != 9 || single.AvgScore != 5 {
		t.Errorf("Unexpected single stats: %+v", single)
	}
	if stats["ai_vs_ai"] == nil || stats["ai_vs_ai"].Rounds != 1 {
		t.Errorf("Unexpected ai_vs_ai stats: %+v", stats["ai_vs_ai"])
	}
}

func TestStoreAsSessionBackend(t *testing.T) {
	store := openTestStore(t)
	store.Save(map[string]int{"player_vs_ai": 15})

	s, err := session.New(session.Options{
		Config:   config.DefaultFlappyConfig(),
		Store:    store,
		Recorder: store,
	})
	if err != nil {
		t.Fatalf("session.New() failed: %v", err)
	}
	if got := s.State().Best[session.ModePlayerVsAI]; got != 15 {
		t.Errorf("Session best = %d, want 15 loaded from the store", got)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
