package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matchcomb/matchcomb/app/calendar"
	"github.com/matchcomb/matchcomb/app/match"
)

type fakeEngine struct {
	teams   []string
	leagues []string
	matches []match.Match
	err     error

	lastTeams   []string
	lastLeagues []string
}

func (f *fakeEngine) Knows(source match.Source) bool {
	return source == match.SourceGazzetta || source == match.SourceMedia24
}

func (f *fakeEngine) Teams(ctx context.Context, source match.Source) ([]string, error) {
	return f.teams, f.err
}

func (f *fakeEngine) Leagues(ctx context.Context, source match.Source) ([]string, error) {
	return f.leagues, f.err
}

func (f *fakeEngine) Matches(ctx context.Context, source match.Source, selectedTeams, selectedLeagues []string) ([]match.Match, error) {
	f.lastTeams = selectedTeams
	f.lastLeagues = selectedLeagues
	return f.matches, f.err
}

type fakeSyncer struct {
	outcome calendar.Outcome
	err     error
}

func (f *fakeSyncer) Sync(ctx context.Context, m match.Match) (calendar.Outcome, error) {
	return f.outcome, f.err
}

func newTestServer(engine ScheduleEngine, syncer CalendarSyncer) http.Handler {
	return NewServer(NewHandler(engine, syncer, match.SourceGazzetta))
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(&fakeEngine{}, &fakeSyncer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"OK"`) {
		t.Errorf("Expected OK status body, got %s", w.Body.String())
	}
}

func TestGetTeams(t *testing.T) {
	engine := &fakeEngine{teams: []string{"Team A", "Team B"}}
	server := newTestServer(engine, &fakeSyncer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/teams", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var teams []string
	if err := json.Unmarshal(w.Body.Bytes(), &teams); err != nil {
		t.Fatal(err)
	}
	if len(teams) != 2 || teams[0] != "Team A" {
		t.Errorf("Expected [Team A, Team B], got %v", teams)
	}
}

func TestGetTeamsUnknownSource(t *testing.T) {
	server := newTestServer(&fakeEngine{}, &fakeSyncer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/teams?source=espn", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown source, got %d", w.Code)
	}
}

func TestGetTeamsEngineError(t *testing.T) {
	engine := &fakeEngine{err: errors.New("upstream down")}
	server := newTestServer(engine, &fakeSyncer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/teams", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "upstream down") {
		t.Error("Expected internal error detail to stay out of the response")
	}
}

func TestGetLeagues(t *testing.T) {
	engine := &fakeEngine{leagues: []string{"Super League"}}
	server := newTestServer(engine, &fakeSyncer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/leagues?source=media24", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var leagues []string
	if err := json.Unmarshal(w.Body.Bytes(), &leagues); err != nil {
		t.Fatal(err)
	}
	if len(leagues) != 1 || leagues[0] != "Super League" {
		t.Errorf("Expected [Super League], got %v", leagues)
	}
}

func TestPostScheduleWithSelections(t *testing.T) {
	engine := &fakeEngine{matches: []match.Match{{ID: "id-1"}}}
	server := newTestServer(engine, &fakeSyncer{})

	body := `{"selectedTeams": ["Team A"], "selectedLeagues": ["Super League"]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/schedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(engine.lastTeams) != 1 || engine.lastTeams[0] != "Team A" {
		t.Errorf("Expected team selection to reach the engine, got %v", engine.lastTeams)
	}
	if len(engine.lastLeagues) != 1 || engine.lastLeagues[0] != "Super League" {
		t.Errorf("Expected league selection to reach the engine, got %v", engine.lastLeagues)
	}
}

func TestPostScheduleEmptyBodyReturnsFullSet(t *testing.T) {
	engine := &fakeEngine{matches: []match.Match{{ID: "id-1"}, {ID: "id-2"}}}
	server := newTestServer(engine, &fakeSyncer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/schedule", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if engine.lastTeams != nil || engine.lastLeagues != nil {
		t.Errorf("Expected absent selections to impose no constraint, got %v / %v", engine.lastTeams, engine.lastLeagues)
	}

	var matches []match.Match
	if err := json.Unmarshal(w.Body.Bytes(), &matches); err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected full set of 2 matches, got %d", len(matches))
	}
}

func TestPostScheduleRejectsNonArraySelection(t *testing.T) {
	server := newTestServer(&fakeEngine{}, &fakeSyncer{})

	body := `{"selectedTeams": "Team A"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/schedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for non-array selection, got %d", w.Code)
	}
}

func TestPostScheduleUnknownSource(t *testing.T) {
	server := newTestServer(&fakeEngine{}, &fakeSyncer{})

	body := `{"source": "espn"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/schedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown source, got %d", w.Code)
	}
}

func TestPostCalendarAddCreated(t *testing.T) {
	syncer := &fakeSyncer{outcome: calendar.OutcomeCreated}
	server := newTestServer(&fakeEngine{}, syncer)

	body := `{"id": "abc123", "title": "Team A - Team B (Basketball)", "date": "2025-05-19", "time": "20:30"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/calendar/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Errorf("Expected success response, got %s", w.Body.String())
	}
}

func TestPostCalendarAddAlreadyExists(t *testing.T) {
	syncer := &fakeSyncer{outcome: calendar.OutcomeExists}
	server := newTestServer(&fakeEngine{}, syncer)

	body := `{"id": "abc123", "title": "Team A - Team B (Basketball)"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/calendar/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already exists") {
		t.Errorf("Expected already-exists message, got %s", w.Body.String())
	}
}

func TestPostCalendarAddAuthorizationPending(t *testing.T) {
	syncer := &fakeSyncer{err: calendar.ErrAuthorizationPending}
	server := newTestServer(&fakeEngine{}, syncer)

	body := `{"id": "abc123"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/calendar/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 while authorization is pending, got %d", w.Code)
	}
}

func TestPostCalendarAddSyncFailure(t *testing.T) {
	syncer := &fakeSyncer{err: errors.New("quota exceeded")}
	server := newTestServer(&fakeEngine{}, syncer)

	body := `{"id": "abc123"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/calendar/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500 for sync failure, got %d", w.Code)
	}
}
