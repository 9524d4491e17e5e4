package match

import (
	"fmt"
	"strings"
)

type Action string

const (
	Like    Action = "like"
	Dislike Action = "dislike"
)

func ParseAction(raw string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(raw))); a {
	case Like, Dislike:
		return a, nil
	default:
		return "", fmt.Errorf("unknown swipe action %q", raw)
	}
}

// Outcome tells the caller what a swipe should do to the pair's row.
type Outcome int

const (
	OutcomeNoop Outcome = iota
	OutcomeCreate
	OutcomeUpdate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreate:
		return "create"
	case OutcomeUpdate:
		return "update"
	default:
		return "noop"
	}
}

// Transition applies a swipe to the pair's current status. current is nil
// when the pair has no active row.
//
//	none      + like    -> create Unmatched
//	none      + dislike -> create Denied
//	Unmatched + like    -> Matched
//	Unmatched + dislike -> Denied
//	Denied    + any     -> no change
//	Matched   + any     -> no change
func Transition(current *Status, a Action) (Status, Outcome) {
	if current == nil {
		if a == Like {
			return Unmatched, OutcomeCreate
		}
		return Denied, OutcomeCreate
	}

	switch *current {
	case Unmatched:
		if a == Dislike {
			return Denied, OutcomeUpdate
		}
		return Matched, OutcomeUpdate
	default:
		return *current, OutcomeNoop
	}
}

// SwipeResult is what a swipe produced, reported back to the acting user.
type SwipeResult struct {
	Match   Match
	Outcome Outcome
	// BecameMatched is set only on the swipe that completed a mutual like.
	BecameMatched bool
}
