package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/agorshkov/hockey-arena/internal/game"
)

// fakeRepo is an in-memory MatchRepo for service tests.
type fakeRepo struct {
	catalog    []game.PlayerCard
	matches    map[string]*game.Match
	users      map[string]*game.User
	statsCalls int
}

func newFakeRepo() *fakeRepo {
	fr := &fakeRepo{
		matches: make(map[string]*game.Match),
		users:   make(map[string]*game.User),
	}
	positions := []game.Position{
		game.PositionGoalie,
		game.PositionDefense, game.PositionDefense,
		game.PositionCenter, game.PositionLeftWing, game.PositionRightWing,
	}
	for set := 0; set < 2; set++ {
		for i, pos := range positions {
			fr.catalog = append(fr.catalog, game.PlayerCard{
				CardID:   fmt.Sprintf("card-%d-%d", set, i),
				Name:     fmt.Sprintf("Player %d-%d", set, i),
				Position: pos,
				Born:     "1997",
				Weight:   "87 kg",
				Rarity:   game.RarityCommon,
				Points:   65,
			})
		}
	}
	return fr
}

func (f *fakeRepo) lineup(set int) []string {
	ids := make([]string, 0, 6)
	for _, c := range f.catalog {
		if len(ids) < 6 && c.CardID[:6] == fmt.Sprintf("card-%d", set) {
			ids = append(ids, c.CardID)
		}
	}
	return ids
}

func (f *fakeRepo) GetCardsByIDs(ids []string) ([]game.PlayerCard, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []game.PlayerCard
	for _, c := range f.catalog {
		if want[c.CardID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetRandomCards(n int) ([]game.PlayerCard, error) {
	if n > len(f.catalog) {
		n = len(f.catalog)
	}
	out := make([]game.PlayerCard, n)
	copy(out, f.catalog[:n])
	return out, nil
}

func (f *fakeRepo) CreateMatch(m *game.Match) error {
	cp := *m
	f.matches[m.MatchUUID] = &cp
	return nil
}

func (f *fakeRepo) GetMatchByUUID(uuid string) (*game.Match, error) {
	m, ok := f.matches[uuid]
	if !ok {
		return nil, ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) FindMatchByJoinCode(code string) (*game.Match, error) {
	for _, m := range f.matches {
		if m.JoinCode == code && m.Status == game.StatusWaiting {
			cp := *m
			return &cp, nil
		}
	}
	return nil, ErrMatchNotFound
}

func (f *fakeRepo) UpdateMatch(m *game.Match) error {
	cp := *m
	f.matches[m.MatchUUID] = &cp
	return nil
}

func (f *fakeRepo) UpdateStatsOnMatchEnd(m *game.Match) error {
	f.statsCalls++
	return nil
}

func (f *fakeRepo) UpsertUser(token, name string) error {
	u, ok := f.users[token]
	if !ok {
		u = &game.User{PlayerToken: token}
		f.users[token] = u
	}
	u.PlayerName = name
	return nil
}

func (f *fakeRepo) GetStatsByToken(token string) (*game.User, error) {
	if u, ok := f.users[token]; ok {
		cp := *u
		return &cp, nil
	}
	return &game.User{PlayerToken: token}, nil
}

func (f *fakeRepo) FindTimedOutMatches(now time.Time) ([]game.Match, error) {
	var out []game.Match
	for _, m := range f.matches {
		if m.Status == game.StatusInProgress && !m.ActionDeadline.IsZero() && !m.ActionDeadline.After(now) {
			out = append(out, *m)
		}
	}
	return out, nil
}

const testTimeout = time.Minute

func createPvPMatch(t *testing.T, fr *fakeRepo, arena *Arena) *game.Match {
	t.Helper()
	m, err := CreateMatch(fr, arena, CreateParams{
		HostToken: "host-token",
		HostName:  "Host",
		CardIDs:   fr.lineup(0),
		Tactic:    "aggressive",
		JoinCode:  "ABCD1234",
		Timeout:   testTimeout,
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	return m
}

func joinPvPMatch(t *testing.T, fr *fakeRepo, arena *Arena) *game.Match {
	t.Helper()
	createPvPMatch(t, fr, arena)
	m, err := JoinMatch(fr, arena, "ABCD1234", "guest-token", "Guest", fr.lineup(1), "defensive", testTimeout)
	if err != nil {
		t.Fatalf("JoinMatch: %v", err)
	}
	return m
}

func TestCreateMatchPvPWaits(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m := createPvPMatch(t, fr, arena)
	if m.Status != game.StatusWaiting {
		t.Fatalf("status = %q, want waiting", m.Status)
	}
	if _, ok := arena.Get(m.MatchUUID); ok {
		t.Fatal("waiting match should not have a live controller")
	}
	if m.HostLineup == "" {
		t.Fatal("host lineup not stored")
	}
}

func TestCreateMatchVsBotStartsImmediately(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m, err := CreateMatch(fr, arena, CreateParams{
		HostToken: "host-token",
		HostName:  "Host",
		CardIDs:   fr.lineup(0),
		Tactic:    "balanced",
		VsBot:     true,
		Timeout:   testTimeout,
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if m.Status != game.StatusInProgress {
		t.Fatalf("status = %q, want in_progress", m.Status)
	}
	if m.GuestLineup == "" || m.GuestName == "" {
		t.Fatal("bot side not populated")
	}
	if _, ok := arena.Get(m.MatchUUID); !ok {
		t.Fatal("bot match should have a live controller")
	}
	if m.ActionDeadline.IsZero() {
		t.Fatal("action deadline not armed")
	}
}

func TestCreateMatchRejectsEmptyLineup(t *testing.T) {
	fr := newFakeRepo()
	if _, err := CreateMatch(fr, NewArena(), CreateParams{HostToken: "h", CardIDs: nil}); err != ErrEmptyLineup {
		t.Fatalf("err = %v, want ErrEmptyLineup", err)
	}
}

func TestJoinMatchStartsSession(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m := joinPvPMatch(t, fr, arena)
	if m.Status != game.StatusInProgress {
		t.Fatalf("status = %q, want in_progress", m.Status)
	}
	if m.Phase != "p1" {
		t.Fatalf("phase = %q, want p1", m.Phase)
	}
	if _, ok := arena.Get(m.MatchUUID); !ok {
		t.Fatal("joined match should have a live controller")
	}
}

func TestJoinOwnMatchRejected(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	createPvPMatch(t, fr, arena)
	_, err := JoinMatch(fr, arena, "ABCD1234", "host-token", "Host", fr.lineup(1), "balanced", testTimeout)
	if err != ErrCannotJoinOwnMatch {
		t.Fatalf("err = %v, want ErrCannotJoinOwnMatch", err)
	}
}

func TestJoinRejectedWhilePairIsLive(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	joinPvPMatch(t, fr, arena)

	if _, err := CreateMatch(fr, arena, CreateParams{
		HostToken: "host-token",
		HostName:  "Host",
		CardIDs:   fr.lineup(0),
		JoinCode:  "ZZZZ9999",
		Timeout:   testTimeout,
	}); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	_, err := JoinMatch(fr, arena, "ZZZZ9999", "guest-token", "Guest", fr.lineup(1), "balanced", testTimeout)
	if err != ErrPairAlreadyPlaying {
		t.Fatalf("err = %v, want ErrPairAlreadyPlaying", err)
	}
}

func TestSubmitTacticResolvesWhenBothIn(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m := joinPvPMatch(t, fr, arena)

	got, advanced, err := SubmitTactic(fr, arena, m.MatchUUID, "host-token", "aggressive", "left", testTimeout)
	if err != nil {
		t.Fatalf("host submit: %v", err)
	}
	if advanced {
		t.Fatal("phase resolved after a single submission")
	}
	if !got.HostSubmitted || got.GuestSubmitted {
		t.Fatalf("submission flags wrong: host=%v guest=%v", got.HostSubmitted, got.GuestSubmitted)
	}

	if _, _, err := SubmitTactic(fr, arena, m.MatchUUID, "host-token", "balanced", "", testTimeout); err != ErrTacticAlreadySubmitted {
		t.Fatalf("second host submit err = %v, want ErrTacticAlreadySubmitted", err)
	}

	got, advanced, err = SubmitTactic(fr, arena, m.MatchUUID, "guest-token", "defensive", "", testTimeout)
	if err != nil {
		t.Fatalf("guest submit: %v", err)
	}
	if !advanced {
		t.Fatal("phase did not resolve after both submissions")
	}
	if got.Phase != "p2" {
		t.Fatalf("phase = %q, want p2", got.Phase)
	}
	if got.HostSubmitted || got.GuestSubmitted {
		t.Fatal("submission flags not reset for next phase")
	}
	if got.LogText == "" {
		t.Fatal("log snapshot not persisted")
	}
}

func TestSubmitTacticRejectsOutsiders(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m := joinPvPMatch(t, fr, arena)
	if _, _, err := SubmitTactic(fr, arena, m.MatchUUID, "stranger", "balanced", "", testTimeout); err != ErrPlayerNotInMatch {
		t.Fatalf("err = %v, want ErrPlayerNotInMatch", err)
	}
}

func TestSubmitTacticPlaysFullMatch(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m := joinPvPMatch(t, fr, arena)

	for round := 0; round < 5; round++ {
		cur, err := fr.GetMatchByUUID(m.MatchUUID)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if cur.Status == game.StatusFinished {
			break
		}
		if _, _, err := SubmitTactic(fr, arena, m.MatchUUID, "host-token", "aggressive", "", testTimeout); err != nil {
			t.Fatalf("round %d host: %v", round, err)
		}
		if _, _, err := SubmitTactic(fr, arena, m.MatchUUID, "guest-token", "defensive", "", testTimeout); err != nil {
			t.Fatalf("round %d guest: %v", round, err)
		}
	}

	final, err := fr.GetMatchByUUID(m.MatchUUID)
	if err != nil {
		t.Fatalf("final fetch: %v", err)
	}
	if final.Status != game.StatusFinished {
		t.Fatalf("status = %q, want finished after at most 4 phases", final.Status)
	}
	if final.Winner != game.TeamOneTag && final.Winner != game.TeamTwoTag {
		t.Fatalf("winner = %q", final.Winner)
	}
	if fr.statsCalls != 1 {
		t.Fatalf("stats updated %d times, want 1", fr.statsCalls)
	}
	if _, ok := arena.Get(m.MatchUUID); ok {
		t.Fatal("finished match still live in arena")
	}
	if _, _, err := SubmitTactic(fr, arena, m.MatchUUID, "host-token", "balanced", "", testTimeout); err != ErrMatchNotInProgress {
		t.Fatalf("submit after finish err = %v, want ErrMatchNotInProgress", err)
	}
}

func TestSubmitTacticRecoversAfterRestart(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m := joinPvPMatch(t, fr, arena)

	if _, _, err := SubmitTactic(fr, arena, m.MatchUUID, "host-token", "aggressive", "", testTimeout); err != nil {
		t.Fatalf("host submit: %v", err)
	}
	if _, _, err := SubmitTactic(fr, arena, m.MatchUUID, "guest-token", "defensive", "", testTimeout); err != nil {
		t.Fatalf("guest submit: %v", err)
	}

	// simulate a restart: the live controller is gone, only the DB row remains
	fresh := NewArena()
	if _, _, err := SubmitTactic(fr, fresh, m.MatchUUID, "host-token", "balanced", "", testTimeout); err != nil {
		t.Fatalf("host submit after restart: %v", err)
	}
	got, advanced, err := SubmitTactic(fr, fresh, m.MatchUUID, "guest-token", "balanced", "", testTimeout)
	if err != nil {
		t.Fatalf("guest submit after restart: %v", err)
	}
	if !advanced {
		t.Fatal("recovered match did not resolve the phase")
	}
	if got.Phase != "p3" {
		t.Fatalf("phase = %q, want p3 after recovered second period", got.Phase)
	}
}

func TestVsBotSubmitAdvancesEveryPhase(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m, err := CreateMatch(fr, arena, CreateParams{
		HostToken: "host-token",
		HostName:  "Host",
		CardIDs:   fr.lineup(0),
		VsBot:     true,
		Timeout:   testTimeout,
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	got, advanced, err := SubmitTactic(fr, arena, m.MatchUUID, "host-token", "balanced", "center", testTimeout)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !advanced {
		t.Fatal("bot match phase should resolve on every host submission")
	}
	if got.Phase != "p2" {
		t.Fatalf("phase = %q, want p2", got.Phase)
	}
}

func TestSimulateMatchFinishesImmediately(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m := joinPvPMatch(t, fr, arena)

	got, err := SimulateMatch(fr, arena, m.MatchUUID, "guest-token")
	if err != nil {
		t.Fatalf("SimulateMatch: %v", err)
	}
	if got.Status != game.StatusFinished {
		t.Fatalf("status = %q, want finished", got.Status)
	}
	if got.Winner == "" || got.Winner == game.DrawTag {
		t.Fatalf("winner = %q", got.Winner)
	}
	if got.LogText == "" {
		t.Fatal("no log persisted")
	}
	if fr.statsCalls != 1 {
		t.Fatalf("stats updated %d times, want 1", fr.statsCalls)
	}
}

func TestSimulateMatchRejectsOutsiders(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m := joinPvPMatch(t, fr, arena)
	if _, err := SimulateMatch(fr, arena, m.MatchUUID, "stranger"); err != ErrPlayerNotInMatch {
		t.Fatalf("err = %v, want ErrPlayerNotInMatch", err)
	}
}

func TestHandleTimedOutMatchBothIdle(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m := joinPvPMatch(t, fr, arena)

	cur, _ := fr.GetMatchByUUID(m.MatchUUID)
	cur.ActionDeadline = time.Now().Add(-time.Minute)
	_ = fr.UpdateMatch(cur)

	if err := HandleTimedOutMatch(fr, arena, cur, testTimeout); err != nil {
		t.Fatalf("HandleTimedOutMatch: %v", err)
	}
	final, _ := fr.GetMatchByUUID(m.MatchUUID)
	if final.Status != game.StatusFinished {
		t.Fatalf("status = %q, want finished", final.Status)
	}
	if final.Winner != "" {
		t.Fatalf("expired match has winner %q", final.Winner)
	}
	if fr.statsCalls != 0 {
		t.Fatal("expired match must not count stats")
	}
	if _, ok := arena.Get(m.MatchUUID); ok {
		t.Fatal("expired match still live in arena")
	}
}

func TestHandleTimedOutMatchOneIdle(t *testing.T) {
	fr := newFakeRepo()
	arena := NewArena()
	m := joinPvPMatch(t, fr, arena)

	if _, _, err := SubmitTactic(fr, arena, m.MatchUUID, "host-token", "aggressive", "", testTimeout); err != nil {
		t.Fatalf("host submit: %v", err)
	}
	cur, _ := fr.GetMatchByUUID(m.MatchUUID)
	cur.ActionDeadline = time.Now().Add(-time.Minute)
	_ = fr.UpdateMatch(cur)

	if err := HandleTimedOutMatch(fr, arena, cur, testTimeout); err != nil {
		t.Fatalf("HandleTimedOutMatch: %v", err)
	}
	final, _ := fr.GetMatchByUUID(m.MatchUUID)
	if final.Status != game.StatusInProgress {
		t.Fatalf("status = %q, want in_progress after auto-submit", final.Status)
	}
	if final.Phase != "p2" {
		t.Fatalf("phase = %q, want p2 after auto-resolved phase", final.Phase)
	}
}

func TestBotTacticDerivedFromSeed(t *testing.T) {
	m := &game.Match{Seed: 4242, Phase: "p1"}
	first := botTacticFor(m)
	for i := 0; i < 10; i++ {
		if got := botTacticFor(m); got != first {
			t.Fatalf("bot tactic changed between calls: %q vs %q", got, first)
		}
	}
	known := false
	for _, tac := range botTactics {
		if tac == first {
			known = true
		}
	}
	if !known {
		t.Fatalf("bot tactic %q not in the allowed set", first)
	}

	varied := false
	for seed := int64(0); seed < 50 && !varied; seed++ {
		if botTacticFor(&game.Match{Seed: seed, Phase: "p1"}) != first {
			varied = true
		}
	}
	if !varied {
		t.Fatal("bot tactic ignores the match seed")
	}
}

func TestLoadRosterPreservesOrderAndDuplicates(t *testing.T) {
	fr := newFakeRepo()
	ids := []string{"card-0-3", "card-0-0", "card-0-3"}
	roster, err := LoadRoster(fr, ids)
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	if len(roster) != 3 {
		t.Fatalf("roster size = %d, want 3", len(roster))
	}
	for i, id := range ids {
		if roster[i].CardID != id {
			t.Fatalf("roster[%d] = %q, want %q", i, roster[i].CardID, id)
		}
	}
}

func TestLoadRosterUnknownCard(t *testing.T) {
	fr := newFakeRepo()
	if _, err := LoadRoster(fr, []string{"card-0-0", "nope"}); err != ErrUnknownCards {
		t.Fatalf("err = %v, want ErrUnknownCards", err)
	}
}
