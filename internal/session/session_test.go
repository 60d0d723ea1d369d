package session

import (
	"context"
	"testing"
	"time"

	"restaurantmap/models"
)

func TestNew_Defaults(t *testing.T) {
	s := New("abc", 0)
	if s.LocationName != DefaultLocationName || s.Center != DefaultCenter || s.Zoom != DefaultZoom {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.Loaded() || len(s.Records) != 0 {
		t.Fatalf("new session should be empty and not loaded")
	}
}

func TestRelocate_ReplacesRecords(t *testing.T) {
	s := New("abc", 15)
	s.Replace([]models.Restaurant{{Name: "old"}, {Name: "older"}})

	center := models.Coordinates{Lat: 48.8566, Lon: 2.3522}
	s.Relocate("Paris", center, []models.Restaurant{{Name: "new"}})

	if s.LocationName != "Paris" || s.Center != center {
		t.Errorf("location not updated: %+v", s.Location())
	}
	if len(s.Records) != 1 || s.Records[0].Name != "new" {
		t.Errorf("records not replaced: %+v", s.Records)
	}
	if !s.Loaded() {
		t.Errorf("expected loaded after relocate")
	}
	if s.Zoom != 15 {
		t.Errorf("zoom changed to %d", s.Zoom)
	}
}

func TestStore_Get(t *testing.T) {
	st := NewStore(12)

	first, created := st.Get("")
	if !created || first.ID == "" {
		t.Fatalf("expected a new session with an ID, got %+v created=%v", first, created)
	}

	again, created := st.Get(first.ID)
	if created || again != first {
		t.Fatalf("expected the same session back")
	}

	other, created := st.Get("not-a-known-id")
	if !created || other.ID == first.ID {
		t.Fatalf("unknown id should create a distinct session")
	}
	if st.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", st.Len())
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestStore_SweepExpiresIdleSessions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	st := NewStore(12, WithTTL(10*time.Minute), WithClock(clock.Now))

	idle, _ := st.Get("")
	active, _ := st.Get("")

	clock.Advance(6 * time.Minute)
	if _, created := st.Get(active.ID); created {
		t.Fatalf("active session should still exist")
	}

	clock.Advance(6 * time.Minute)
	if removed := st.Sweep(); removed != 1 {
		t.Fatalf("Sweep() removed %d, want 1", removed)
	}
	if st.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", st.Len())
	}
	if _, created := st.Get(idle.ID); !created {
		t.Errorf("idle session should have been evicted")
	}
}

func TestStore_GetReplacesExpiredSession(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	st := NewStore(12, WithTTL(time.Minute), WithClock(clock.Now))

	first, _ := st.Get("")
	clock.Advance(2 * time.Minute)

	next, created := st.Get(first.ID)
	if !created || next.ID == first.ID {
		t.Fatalf("expired id should yield a new session")
	}
	if st.Len() != 1 {
		t.Errorf("expired session should be dropped, Len() = %d", st.Len())
	}
}

func TestStore_MaxSessionsEvictsOldest(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	st := NewStore(12, WithMaxSessions(3), WithClock(clock.Now))

	var ids []string
	for range 50 {
		s, _ := st.Get("")
		ids = append(ids, s.ID)
		clock.Advance(time.Second)
	}

	if st.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", st.Len())
	}
	if _, created := st.Get(ids[0]); !created {
		t.Errorf("oldest session should have been evicted")
	}
	if _, created := st.Get(ids[len(ids)-1]); created {
		t.Errorf("newest session should be kept")
	}
}

func TestStore_RunStopsWithContext(t *testing.T) {
	st := NewStore(12)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
