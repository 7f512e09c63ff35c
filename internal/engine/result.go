package engine

import (
	"fmt"
	"sort"

	"github.com/agorshkov/hockey-arena/internal/game"
)

// topNames returns the names tied for the maximum positive count.
func topNames(counts map[string]int) []string {
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return nil
	}
	var names []string
	for n, c := range counts {
		if c == max {
			names = append(names, n)
		}
	}
	// map iteration order is random per process; sort so the random
	// tie-break below is the only source of randomness.
	sort.Strings(names)
	return names
}

// computeMVP picks uniformly among the skaters tied for most goals and
// the goalies tied for most save credits. The union is deduplicated so a
// name leading both tables carries no extra selection weight. Empty pool
// yields "".
func (s *Session) computeMVP() string {
	pool := topNames(s.goalsBy)
	for _, name := range topNames(s.savesBy) {
		dup := false
		for _, have := range pool {
			if have == name {
				dup = true
				break
			}
		}
		if !dup {
			pool = append(pool, name)
		}
	}
	if len(pool) == 0 {
		return ""
	}
	return pool[s.rng.Intn(len(pool))]
}

// Finish freezes the session into an immutable result. Calling it on a
// level score reports a draw; the controller never does that on a full
// pipeline, but direct Session users may observe it if they skip the
// tie-breaking phases. Finish is idempotent for log purposes: the final
// lines are appended only once.
func (s *Session) Finish() game.MatchResult {
	winner := game.DrawTag
	if s.score1 > s.score2 {
		winner = game.TeamOneTag
	} else if s.score2 > s.score1 {
		winner = game.TeamTwoTag
	}

	if !s.finished {
		s.finished = true
		s.mvp = s.computeMVP()
		s.logLine(fmt.Sprintf(finalScoreTmpl, s.score1, s.score2))
		switch winner {
		case game.TeamOneTag:
			s.logLine(fmt.Sprintf(victoryTmpl, s.team1.Name))
		case game.TeamTwoTag:
			s.logLine(fmt.Sprintf(victoryTmpl, s.team2.Name))
		default:
			s.logLine(drawLine)
		}
	}

	logCopy := make([]string, len(s.log))
	copy(logCopy, s.log)
	return game.MatchResult{
		Winner:      winner,
		Score1:      s.score1,
		Score2:      s.score2,
		Log:         logCopy,
		MVP:         s.mvp,
		StrengthGap: s.strengthGap,
	}
}
