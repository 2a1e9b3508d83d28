package learn

import (
	"time"

	sess "github.com/abhisek/wordbox/internal/session"
)

// sessionInitMsg is sent when the deck and card store are loaded.
type sessionInitMsg struct {
	State *sess.SessionState
	Err   error
}

// timerTickMsg is sent every second to update the elapsed clock.
type timerTickMsg time.Time

// feedbackDoneMsg is sent when the learner dismisses the feedback view.
type feedbackDoneMsg struct{}

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}
