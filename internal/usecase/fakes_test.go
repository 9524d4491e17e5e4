package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"groupie/internal/domain"
	"groupie/internal/domain/match"
	"groupie/internal/domain/profile"
	"groupie/internal/domain/reference"
	"groupie/internal/domain/user"
)

type memRefs struct {
	items  map[reference.Kind]map[int64]reference.Item
	nextID int64
	lists  int
}

func newMemRefs() *memRefs {
	return &memRefs{items: map[reference.Kind]map[int64]reference.Item{}, nextID: 100}
}

func (m *memRefs) seed(k reference.Kind, id int64, name string) {
	if m.items[k] == nil {
		m.items[k] = map[int64]reference.Item{}
	}
	m.items[k][id] = reference.Item{ID: id, Name: name}
}

func (m *memRefs) List(_ context.Context, k reference.Kind) ([]reference.Item, error) {
	m.lists++
	out := []reference.Item{}
	for _, it := range m.items[k] {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRefs) GetByID(_ context.Context, k reference.Kind, id int64) (reference.Item, error) {
	it, ok := m.items[k][id]
	if !ok {
		return reference.Item{}, domain.NotFound(k.Label(), id)
	}
	return it, nil
}

func (m *memRefs) GetByName(_ context.Context, k reference.Kind, name string) (reference.Item, error) {
	for _, it := range m.items[k] {
		if it.Name == name {
			return it, nil
		}
	}
	return reference.Item{}, domain.NotFound(k.Label(), name)
}

func (m *memRefs) NamesByIDs(_ context.Context, k reference.Kind, ids []int64) (map[int64]string, error) {
	out := map[int64]string{}
	for _, id := range ids {
		if it, ok := m.items[k][id]; ok {
			out[id] = it.Name
		}
	}
	return out, nil
}

func (m *memRefs) Create(_ context.Context, k reference.Kind, name string) (reference.Item, error) {
	m.nextID++
	m.seed(k, m.nextID, name)
	return m.items[k][m.nextID], nil
}

func (m *memRefs) Rename(_ context.Context, k reference.Kind, id int64, newName string) (reference.Item, error) {
	it, ok := m.items[k][id]
	if !ok {
		return reference.Item{}, domain.NotFound(k.Label(), id)
	}
	it.Name = newName
	it.UpdatedAt = time.Now()
	m.items[k][id] = it
	return it, nil
}

func (m *memRefs) SoftDelete(_ context.Context, k reference.Kind, id int64) (bool, error) {
	if _, ok := m.items[k][id]; !ok {
		return false, nil
	}
	delete(m.items[k], id)
	return true, nil
}

type memCache struct {
	data    map[string][]byte
	deletes []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
		c.deletes = append(c.deletes, k)
	}
	return nil
}

type memUsers struct {
	byID      map[int64]user.User
	nextID    int64
	profiles  *memProfiles
	lastPatch user.Patch
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[int64]user.User{}}
}

func (m *memUsers) put(u user.User) user.User {
	if u.ID == 0 {
		m.nextID++
		u.ID = m.nextID
	}
	m.byID[u.ID] = u
	return u
}

func (m *memUsers) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, domain.NotFound("User", id)
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == user.NormalizeEmail(email) {
			return u, nil
		}
	}
	return user.User{}, domain.NotFound("User", email)
}

func (m *memUsers) Create(ctx context.Context, u user.User) (user.User, error) {
	if _, err := m.GetByEmail(ctx, u.Email); err == nil {
		return user.User{}, domain.ErrDuplicateEmail
	}
	return m.put(u), nil
}

func (m *memUsers) Update(_ context.Context, id int64, p user.Patch) (user.User, error) {
	m.lastPatch = p
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, domain.NotFound("User", id)
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Birthdate != nil {
		u.Birthdate = p.Birthdate
	}
	if p.UserType != nil {
		u.UserType = *p.UserType
	}
	m.byID[id] = u
	return u, nil
}

func (m *memUsers) SoftDelete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *memUsers) CreateWithProfile(ctx context.Context, u user.User) (user.User, profile.Profile, error) {
	created, err := m.Create(ctx, u)
	if err != nil {
		return user.User{}, profile.Profile{}, err
	}
	p := profile.Default(created.ID)
	if m.profiles != nil {
		p, _ = m.profiles.Create(ctx, p)
	}
	return created, p, nil
}

type memProfiles struct {
	byID   map[int64]profile.Profile
	users  *memUsers
	nextID int64
}

func newMemProfiles(users *memUsers) *memProfiles {
	return &memProfiles{byID: map[int64]profile.Profile{}, users: users}
}

func (m *memProfiles) own(p profile.Profile) (profile.Owned, bool) {
	u, ok := m.users.byID[p.UserID]
	if !ok {
		return profile.Owned{}, false
	}
	return profile.Owned{Profile: p, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, UserType: u.UserType}, true
}

func (m *memProfiles) GetByID(_ context.Context, id int64) (profile.Owned, error) {
	if p, ok := m.byID[id]; ok {
		if o, ok := m.own(p); ok {
			return o, nil
		}
	}
	return profile.Owned{}, domain.NotFound("Profile", id)
}

func (m *memProfiles) GetByUserID(_ context.Context, userID int64) (profile.Owned, error) {
	for _, p := range m.byID {
		if p.UserID == userID {
			if o, ok := m.own(p); ok {
				return o, nil
			}
		}
	}
	return profile.Owned{}, domain.NotFound("Profile for user", userID)
}

func (m *memProfiles) List(_ context.Context, excludeUserID int64) ([]profile.Owned, error) {
	var out []profile.Owned
	for _, p := range m.byID {
		if excludeUserID > 0 && p.UserID == excludeUserID {
			continue
		}
		if o, ok := m.own(p); ok {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProfiles) Create(_ context.Context, p profile.Profile) (profile.Profile, error) {
	m.nextID++
	p.ID = m.nextID
	m.byID[p.ID] = p
	return p, nil
}

func (m *memProfiles) Update(_ context.Context, id int64, patch profile.Patch) (profile.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return profile.Profile{}, domain.NotFound("Profile", id)
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Genres != nil {
		p.Genres = patch.Genres
	}
	if patch.Instruments != nil {
		p.Instruments = patch.Instruments
	}
	if patch.ProficiencyLevel != nil {
		p.ProficiencyLevel = *patch.ProficiencyLevel
	}
	m.byID[id] = p
	return p, nil
}

func (m *memProfiles) SoftDelete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

// memMatches keeps one row per unordered pair and applies match.Transition
// the same way the Postgres repository does.
type memMatches struct {
	mu     sync.Mutex
	byID   map[int64]match.Match
	nextID int64
}

func newMemMatches() *memMatches {
	return &memMatches{byID: map[int64]match.Match{}}
}

func (m *memMatches) GetByID(_ context.Context, id int64) (match.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt, ok := m.byID[id]
	if !ok {
		return match.Match{}, domain.NotFound("Match", id)
	}
	return mt, nil
}

func (m *memMatches) List(context.Context) ([]match.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []match.Match{}
	for _, mt := range m.byID {
		out = append(out, mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memMatches) between(a, b int64) (match.Match, bool) {
	for _, mt := range m.byID {
		if (mt.UserIDOne == a && mt.UserIDTwo == b) || (mt.UserIDOne == b && mt.UserIDTwo == a) {
			return mt, true
		}
	}
	return match.Match{}, false
}

func (m *memMatches) Between(_ context.Context, a, b int64) (match.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mt, ok := m.between(a, b); ok {
		return mt, nil
	}
	return match.Match{}, domain.NotFound("Match", nil)
}

func (m *memMatches) ListByUserAndStatus(_ context.Context, userID int64, s match.Status) ([]match.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []match.Match
	for _, mt := range m.byID {
		if mt.Involves(userID) && mt.Status == s {
			out = append(out, mt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memMatches) Create(_ context.Context, mt match.Match) (match.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(mt)
}

func (m *memMatches) create(mt match.Match) (match.Match, error) {
	if _, ok := m.between(mt.UserIDOne, mt.UserIDTwo); ok {
		return match.Match{}, domain.AlreadyExists("Match", nil)
	}
	m.nextID++
	mt.ID = m.nextID
	m.byID[mt.ID] = mt
	return mt, nil
}

func (m *memMatches) Update(_ context.Context, id int64, p match.Patch) (match.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt, ok := m.byID[id]
	if !ok {
		return match.Match{}, domain.NotFound("Match", id)
	}
	if p.UserIDOne != nil {
		mt.UserIDOne = *p.UserIDOne
	}
	if p.UserIDTwo != nil {
		mt.UserIDTwo = *p.UserIDTwo
	}
	if p.Status != nil {
		mt.Status = *p.Status
	}
	m.byID[id] = mt
	return mt, nil
}

func (m *memMatches) SoftDelete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *memMatches) ApplySwipe(_ context.Context, actor, target int64, a match.Action) (match.SwipeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current *match.Status
	existing, found := m.between(actor, target)
	if found {
		current = &existing.Status
	}
	next, outcome := match.Transition(current, a)

	switch outcome {
	case match.OutcomeCreate:
		created, err := m.create(match.Match{UserIDOne: actor, UserIDTwo: target, Status: next})
		if err != nil {
			return match.SwipeResult{}, err
		}
		return match.SwipeResult{Match: created, Outcome: outcome}, nil
	case match.OutcomeUpdate:
		existing.Status = next
		m.byID[existing.ID] = existing
		return match.SwipeResult{Match: existing, Outcome: outcome, BecameMatched: next == match.Matched}, nil
	default:
		return match.SwipeResult{Match: existing, Outcome: outcome}, nil
	}
}

type recordingNotifier struct {
	calls [][3]int64
}

func (n *recordingNotifier) MatchCreated(matchID, userA, userB int64) {
	n.calls = append(n.calls, [3]int64{matchID, userA, userB})
}
