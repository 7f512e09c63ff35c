package engine

import "github.com/agorshkov/hockey-arena/internal/game"

// Phase is the explicit state of the match state machine.
type Phase string

const (
	PhaseFirstPeriod  Phase = "p1"
	PhaseSecondPeriod Phase = "p2"
	PhaseThirdPeriod  Phase = "p3"
	PhaseOvertime     Phase = "ot"
	PhaseEnd          Phase = "end"
)

// Controller wraps one session in a finite-state machine so external
// callers can drive the match one phase at a time. The surrounding system
// stores controllers by an opaque match id; nothing in here knows about
// users, chats or transport.
type Controller struct {
	session *Session
	phase   Phase
}

func NewController(s *Session) *Controller {
	return &Controller{session: s, phase: PhaseFirstPeriod}
}

func (c *Controller) Phase() Phase      { return c.phase }
func (c *Controller) Session() *Session { return c.session }
func (c *Controller) Done() bool        { return c.phase == PhaseEnd }

// Step advances exactly one phase with the supplied tactics. Tactics may
// legitimately differ call to call (mid-match tactical changes). An
// overtime step runs the shootout inline when sudden death solves
// nothing, so the machine always leaves overtime decisive. Stepping a
// finished match is a no-op.
func (c *Controller) Step(tactic1, tactic2 string) {
	switch c.phase {
	case PhaseFirstPeriod:
		c.session.PlayPeriod(tactic1, tactic2)
		c.phase = PhaseSecondPeriod
	case PhaseSecondPeriod:
		c.session.PlayPeriod(tactic1, tactic2)
		c.phase = PhaseThirdPeriod
	case PhaseThirdPeriod:
		c.session.PlayPeriod(tactic1, tactic2)
		if c.session.Tied() {
			c.phase = PhaseOvertime
		} else {
			c.phase = PhaseEnd
		}
	case PhaseOvertime:
		if !c.session.PlayOvertime(tactic1, tactic2) {
			c.session.Shootout()
		}
		c.phase = PhaseEnd
	case PhaseEnd:
	}
}

// Finish freezes the session result. The controller reaches PhaseEnd only
// on a decisive score, so a full interactive or autonomous playthrough
// never yields a draw.
func (c *Controller) Finish() game.MatchResult {
	return c.session.Finish()
}

// AutoPlay drives the machine to completion with the tactics configured
// at session construction and returns the frozen result.
func (c *Controller) AutoPlay() game.MatchResult {
	t1, t2 := c.session.team1.Tactic, c.session.team2.Tactic
	for !c.Done() {
		c.Step(string(t1), string(t2))
	}
	return c.Finish()
}
