package match

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the persisted state of a pair. The numeric codes are stored in
// matches.status and mirror the seeded match_status rows.
type Status int16

const (
	Unmatched Status = 0
	Matched   Status = 1
	Denied    Status = 2
)

var statusNames = map[Status]string{
	Unmatched: "Unmatched",
	Matched:   "Matched",
	Denied:    "Denied",
}

func Statuses() []Status {
	return []Status{Unmatched, Matched, Denied}
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	for s, n := range statusNames {
		if strings.EqualFold(n, raw) {
			return s, nil
		}
	}
	if code, err := strconv.Atoi(raw); err == nil {
		s := Status(code)
		if s.Valid() {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown match status %q", raw)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the status name or its numeric code.
func (s *Status) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		v, err := ParseStatus(name)
		if err != nil {
			return err
		}
		*s = v
		return nil
	}

	var code int
	if err := json.Unmarshal(b, &code); err != nil {
		return fmt.Errorf("match status must be a name or code: %w", err)
	}
	v := Status(code)
	if !v.Valid() {
		return fmt.Errorf("unknown match status code %d", code)
	}
	*s = v
	return nil
}

type Match struct {
	ID        int64
	UserIDOne int64
	UserIDTwo int64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Involves reports whether the user is either side of the pair.
func (m Match) Involves(userID int64) bool {
	return m.UserIDOne == userID || m.UserIDTwo == userID
}

// Counterpart returns the other side of the pair.
func (m Match) Counterpart(userID int64) int64 {
	if m.UserIDOne == userID {
		return m.UserIDTwo
	}
	return m.UserIDOne
}

type Patch struct {
	UserIDOne *int64
	UserIDTwo *int64
	Status    *Status
}

func (p Patch) Empty() bool {
	return p.UserIDOne == nil && p.UserIDTwo == nil && p.Status == nil
}
