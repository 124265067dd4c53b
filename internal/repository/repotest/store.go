// Package repotest содержит in-memory реализации репозиториев для тестов.
package repotest

import (
	"apiforge/internal/models"
	"apiforge/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store хранит общее состояние всех фейковых репозиториев.
type Store struct {
	mu        sync.Mutex
	users     map[uuid.UUID]models.User
	projects  map[uuid.UUID]models.Project
	endpoints []models.Endpoint
	resets    map[uuid.UUID]models.PasswordResetToken // по user_id

	// Err, если задан, возвращается из любой операции записи.
	Err error
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]models.User),
		projects: make(map[uuid.UUID]models.Project),
		resets:   make(map[uuid.UUID]models.PasswordResetToken),
	}
}

func (s *Store) Users() *Users { return &Users{s} }
func (s *Store) Projects() *Projects { return &Projects{s} }
func (s *Store) Endpoints() *Endpoints { return &Endpoints{s} }
func (s *Store) PasswordResets() *PasswordResets { return &PasswordResets{s} }

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) EndpointCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.endpoints)
}

// ResetTokens возвращает все токены сброса, в том числе просроченные.
func (s *Store) ResetTokens() []models.PasswordResetToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PasswordResetToken, 0, len(s.resets))
	for _, t := range s.resets {
		out = append(out, t)
	}
	return out
}

// ExpireResetTokens сдвигает срок действия всех токенов в прошлое.
func (s *Store) ExpireResetTokens(ago time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, t := range s.resets {
		t.ExpiresAt = time.Now().Add(-ago)
		s.resets[k] = t
	}
}

type Users struct{ s *Store }

var _ repository.UserRepo = (*Users)(nil)

func (r *Users) CreateUser(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *Users) IsEmailTaken(_ context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *Users) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type Projects struct{ s *Store }

var _ repository.ProjectRepo = (*Projects)(nil)

func (r *Projects) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Project, 0)
	for _, p := range r.s.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Projects) Create(_ context.Context, p *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	r.s.projects[p.ID] = *p
	return nil
}

func (r *Projects) GetOwned(_ context.Context, id, userID uuid.UUID) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *Projects) GetOwnedWithEndpoints(ctx context.Context, id, userID uuid.UUID) (*models.ProjectDetail, error) {
	owned, err := r.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := &models.ProjectDetail{Project: *owned, Endpoints: make([]models.Endpoint, 0)}
	for _, e := range r.s.endpoints {
		if e.ProjectID == id {
			p.Endpoints = append(p.Endpoints, e)
		}
	}
	sort.Slice(p.Endpoints, func(i, j int) bool { return p.Endpoints[i].Path < p.Endpoints[j].Path })
	return p, nil
}

type Endpoints struct{ s *Store }

var _ repository.EndpointRepo = (*Endpoints)(nil)

func (r *Endpoints) Create(_ context.Context, e *models.Endpoint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	r.s.endpoints = append(r.s.endpoints, *e)
	return nil
}

type PasswordResets struct{ s *Store }

var _ repository.PasswordResetRepo = (*PasswordResets)(nil)

func (r *PasswordResets) Replace(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.resets[userID] = models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *PasswordResets) GetByHash(_ context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.resets {
		if t.TokenHash == tokenHash {
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PasswordResets) Consume(_ context.Context, token *models.PasswordResetToken, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	cur, ok := r.s.resets[token.UserID]
	if !ok || cur.ID != token.ID {
		return repository.ErrNotFound
	}
	u, ok := r.s.users[token.UserID]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.s.resets, token.UserID)
	u.PasswordHash = passwordHash
	r.s.users[u.ID] = u
	return nil
}
