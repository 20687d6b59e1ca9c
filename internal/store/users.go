package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"cinefront/internal/events"
	"cinefront/internal/models"
)

func (s *Store) CreateUser(u models.User) (*models.User, error) {
	if err := s.checkStruct(u); err != nil {
		return nil, err
	}
	if u.Role == "" {
		u.Role = models.RoleCustomer
	}
	if u.Status == "" {
		u.Status = models.UserActive
	}
	key := strings.ToLower(u.Username)

	s.mu.Lock()
	if _, exists := s.usernames[key]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("username %q: %w", u.Username, ErrDuplicateUsername)
	}
	s.userSeq++
	u.ID = s.userSeq
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	stored := u.Clone()
	s.users[stored.ID] = &stored
	s.usernames[key] = stored.ID
	out := stored.Clone()
	s.mu.Unlock()

	s.log.LogStore("CREATE", "user", fmt.Sprintf("id=%d username=%q", out.ID, out.Username))
	s.publishChange(events.TypeCreated, "user", out)
	return &out, nil
}

func (s *Store) GetUser(id int64) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil
	}
	out := u.Clone()
	return &out
}

// GetUserByUsername is case-insensitive: "Alice" and "alice" resolve to the
// same account.
func (s *Store) GetUserByUsername(username string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[strings.ToLower(username)]
	if !ok {
		return nil
	}
	out := s.users[id].Clone()
	return &out
}

func (s *Store) ListUsers(filter models.UserFilter) []models.User {
	s.mu.RLock()
	all := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return lo.Filter(all, func(u models.User, _ int) bool {
		if filter.Role != "" && u.Role != filter.Role {
			return false
		}
		if filter.Status != "" && u.Status != filter.Status {
			return false
		}
		return true
	})
}

func (s *Store) UpdateUser(id int64, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	u, ok := s.users[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	patch.Apply(u)
	out := u.Clone()
	s.mu.Unlock()

	s.publishChange(events.TypeUpdated, "user", out)
	return &out, nil
}

func (s *Store) DeleteUser(id int64) bool {
	s.mu.Lock()
	u, ok := s.users[id]
	var out models.User
	if ok {
		out = u.Clone()
		delete(s.users, id)
		delete(s.usernames, strings.ToLower(u.Username))
	}
	s.mu.Unlock()

	if ok {
		s.publishChange(events.TypeDeleted, "user", out)
	}
	return ok
}
