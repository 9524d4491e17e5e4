package ws

import (
	"encoding/json"
	"time"
)

const EventMatchCreated = "match_created"

type MatchCreatedEvent struct {
	Type      string `json:"type"`
	MatchID   int64  `json:"match_id"`
	UserID    int64  `json:"user_id"`
	WithUser  int64  `json:"with_user_id"`
	Timestamp string `json:"timestamp"`
}

// MatchNotifier pushes match events to connected users through a Hub.
type MatchNotifier struct {
	hub *Hub
	now func() time.Time
}

func NewMatchNotifier(hub *Hub) *MatchNotifier {
	return &MatchNotifier{hub: hub, now: time.Now}
}

// MatchCreated tells both sides of a new mutual match.
func (n *MatchNotifier) MatchCreated(matchID, userA, userB int64) {
	if n == nil || n.hub == nil {
		return
	}
	ts := n.now().UTC().Format(time.RFC3339)
	for _, pair := range [][2]int64{{userA, userB}, {userB, userA}} {
		b, err := json.Marshal(MatchCreatedEvent{
			Type:      EventMatchCreated,
			MatchID:   matchID,
			UserID:    pair[0],
			WithUser:  pair[1],
			Timestamp: ts,
		})
		if err != nil {
			continue
		}
		n.hub.SendTo(pair[0], b)
	}
}
