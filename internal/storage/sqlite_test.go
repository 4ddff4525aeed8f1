package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/snake-modes/internal/core"
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

// noon returns fractional unix seconds for 12:00 UTC on the given day,
// offset by minutes.
func noon(day, minutes int) float64 {
	base := time.Date(2024, 5, day, 12, 0, 0, 0, time.UTC)
	return float64(base.Add(time.Duration(minutes)*time.Minute).Unix()) + 0.25
}

func mustRecord(t *testing.T, s *Store, player, mode string, score int, secs, at float64) {
	t.Helper()
	if _, err := s.RecordScore(player, mode, score, secs, at); err != nil {
		t.Fatalf("RecordScore(%s, %s, %d) failed: %v", player, mode, score, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
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

func TestRecordScoreUppercase(t *testing.T) {
	s := openTestStore(t)
	mustRecord(t, s, " ada ", "Walls", 40, 12.5, noon(1, 0))

	scores, err := s.AllScores()
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(scores))
	}
	got := scores[0]
	if got.Player != "ADA" || got.Mode != "Walls" || got.Score != 40 || got.Time != 12.5 || got.PlayedAt != noon(1, 0) {
		t.Errorf("record = %+v", got)
	}
	if got.Date().Unix() != int64(noon(1, 0)) {
		t.Errorf("Date() = %v", got.Date())
	}

	if _, err := s.RecordScore("  ", "Walls", 1, 1, 1); !errors.Is(err, ErrEmptyPlayer) {
		t.Errorf("empty player error = %v, want ErrEmptyPlayer", err)
	}
}

func TestRankOrder(t *testing.T) {
	s := openTestStore(t)
	mustRecord(t, s, "A", "Standard", 50, 30, noon(1, 0))
	mustRecord(t, s, "B", "Standard", 70, 40, noon(1, 5))
	mustRecord(t, s, "C", "Standard", 50, 20, noon(1, 10)) // same score, faster
	mustRecord(t, s, "D", "Standard", 50, 30, noon(2, 0))  // same score and time, newer
	mustRecord(t, s, "E", "Walls", 90, 10, noon(3, 0))

	scores, err := s.ScoresForMode("Standard")
	if err != nil {
		t.Fatalf("ScoresForMode() failed: %v", err)
	}
	var order []string
	for _, r := range scores {
		order = append(order, r.Player)
	}
	if want := []string{"B", "C", "D", "A"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	all, err := s.ScoresForMode("")
	if err != nil {
		t.Fatalf("ScoresForMode(\"\") failed: %v", err)
	}
	if len(all) != 5 || all[0].Player != "E" {
		t.Errorf("all modes = %+v", all)
	}

	// Mode filter is an exact match
	if partial, _ := s.ScoresForMode("Stand"); len(partial) != 0 {
		t.Errorf("partial mode matched %d records", len(partial))
	}
}

func TestTopScores(t *testing.T) {
	s := openTestStore(t)
	for i := range 15 {
		mustRecord(t, s, "P", "Poison", i*10, 5, noon(1, i))
	}
	mustRecord(t, s, "Q", "Walls", 1000, 5, noon(2, 0))

	top, err := s.TopScores("Poison", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 || top[0].Score != 140 || top[2].Score != 120 {
		t.Errorf("top 3 = %+v", top)
	}

	top, _ = s.TopScores("Poison", 0)
	if len(top) != 10 {
		t.Errorf("default limit returned %d, want 10", len(top))
	}

	top, _ = s.TopScores("", 1)
	if len(top) != 1 || top[0].Mode != "Walls" {
		t.Errorf("all-time top = %+v", top)
	}
}

func TestHighScore(t *testing.T) {
	s := openTestStore(t)

	if hs, err := s.HighScore("Walls"); err != nil || hs != 0 {
		t.Errorf("empty HighScore = %d, %v", hs, err)
	}

	mustRecord(t, s, "A", "Walls", 30, 1, noon(1, 0))
	mustRecord(t, s, "B", "Walls", 80, 1, noon(1, 1))
	mustRecord(t, s, "C", "Poison", 200, 1, noon(1, 2))

	if hs, _ := s.HighScore("Walls"); hs != 80 {
		t.Errorf("HighScore(Walls) = %d, want 80", hs)
	}
}

func TestTotals(t *testing.T) {
	s := openTestStore(t)

	empty, err := s.Totals("")
	if err != nil {
		t.Fatalf("Totals() on empty store failed: %v", err)
	}
	if empty.Games != 0 || empty.DaysPlayed != 0 || !empty.FirstPlayed.IsZero() {
		t.Errorf("empty totals = %+v", empty)
	}

	mustRecord(t, s, "ann", "Standard", 10, 1.5, noon(1, 0))
	mustRecord(t, s, "ANN", "Walls", 20, 2.5, noon(1, 10))
	mustRecord(t, s, "bob", "Walls", 30, 3.0, noon(6, 0))

	all, err := s.Totals("")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	want := Totals{
		Games:       3,
		Players:     2,
		Modes:       2,
		TotalScore:  60,
		TotalTime:   7.0,
		FirstPlayed: unixFloat(noon(1, 0)),
		LastPlayed:  unixFloat(noon(6, 0)),
		DaysPlayed:  2,
	}
	if all.Games != want.Games || all.Players != want.Players || all.Modes != want.Modes ||
		all.TotalScore != want.TotalScore || all.TotalTime != want.TotalTime || all.DaysPlayed != want.DaysPlayed {
		t.Errorf("totals = %+v, want %+v", all, want)
	}
	if !all.FirstPlayed.Equal(want.FirstPlayed) || !all.LastPlayed.Equal(want.LastPlayed) {
		t.Errorf("first/last = %v/%v, want %v/%v", all.FirstPlayed, all.LastPlayed, want.FirstPlayed, want.LastPlayed)
	}

	walls, _ := s.Totals("Walls")
	if walls.Games != 2 || walls.Players != 2 || walls.Modes != 1 || walls.TotalScore != 50 || walls.DaysPlayed != 2 {
		t.Errorf("walls totals = %+v", walls)
	}
}

func TestDistinctModesAndDeleteAll(t *testing.T) {
	s := openTestStore(t)
	mustRecord(t, s, "A", "Walls", 1, 1, noon(1, 0))
	mustRecord(t, s, "A", "Extreme", 1, 1, noon(1, 0))
	mustRecord(t, s, "B", "Walls", 1, 1, noon(1, 0))

	modes, err := s.DistinctModes()
	if err != nil {
		t.Fatalf("DistinctModes() failed: %v", err)
	}
	if want := []string{"Extreme", "Walls"}; !reflect.DeepEqual(modes, want) {
		t.Errorf("modes = %v, want %v", modes, want)
	}

	if err := s.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll() failed: %v", err)
	}
	if all, _ := s.AllScores(); len(all) != 0 {
		t.Errorf("%d scores left after DeleteAll", len(all))
	}
}

func TestRecordSession(t *testing.T) {
	s := openTestStore(t)
	end := time.Date(2024, 5, 1, 12, 0, 0, 500_000_000, time.UTC)

	_, err := s.RecordSession("eve", core.SessionResult{
		Mode:    "Poison",
		Score:   0,
		Elapsed: 2500 * time.Millisecond,
		EndedAt: end,
	})
	if err != nil {
		t.Fatalf("RecordSession() failed: %v", err)
	}

	scores, _ := s.ScoresForMode("Poison")
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(scores))
	}
	if r := scores[0]; r.Player != "EVE" || r.Score != 0 || r.Time != 2.5 || r.PlayedAt != float64(end.Unix())+0.5 {
		t.Errorf("record = %+v", r)
	}
}

func TestConcurrentWrites(t *testing.T) {
	s := openTestStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.RecordScore("p", "Walls", i, 1, noon(1, i)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent RecordScore failed: %v", err)
	}
	if all, _ := s.AllScores(); len(all) != 8 {
		t.Errorf("got %d scores, want 8", len(all))
	}
}
