package wizard

import (
	"maps"

	"github.com/google/uuid"
)

// Session is the ephemeral state of one wizard run. It is discarded on
// close, skip or successful creation.
type Session struct {
	ID             string
	Step           Step
	Idea           string
	Recommendation *Recommendation
	Source         Source
	Form           map[string]string
	Submission     SubmissionState
	InlineError    string
	AILoading      bool

	edited map[string]bool
}

func newSession() *Session {
	return &Session{
		ID:     uuid.NewString(),
		Step:   StepIdea,
		Form:   map[string]string{},
		edited: map[string]bool{},
	}
}

// Edited reports whether the user changed the named field by hand.
func (s Session) Edited(name string) bool {
	return s.edited[name]
}

// Busy reports whether a network call is pending for the session.
func (s Session) Busy() bool {
	return s.AILoading || s.Submission == SubmissionPending
}

func (s *Session) clone() Session {
	out := *s
	out.Form = maps.Clone(s.Form)
	out.edited = maps.Clone(s.edited)
	if s.Recommendation != nil {
		rec := *s.Recommendation
		out.Recommendation = &rec
	}
	return out
}
