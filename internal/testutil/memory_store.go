package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/authkit/authkit-server/internal/model"
)

var _ model.UserStore = (*MemoryUserStore)(nil)

// MemoryUserStore is an in-memory model.UserStore with the same conditional
// update semantics as the Postgres repository.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]model.User)}
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *MemoryUserStore) CreateInactive(_ context.Context, nu model.NewUser) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[nu.Email]; ok {
		return model.User{}, model.ErrDuplicateEmail
	}

	code, expires := nu.OTPCode, nu.OTPExpiresAt
	now := time.Now().UTC()
	u := model.User{
		ID:             nu.ID,
		Email:          nu.Email,
		PasswordDigest: nu.PasswordDigest,
		Name:           nu.Name,
		Role:           nu.Role,
		OTPCode:        &code,
		OTPExpiresAt:   &expires,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.users[nu.Email] = u
	return u, nil
}

func (s *MemoryUserStore) UpdateOTP(_ context.Context, email, code string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok || u.IsActive {
		return model.ErrNotFound
	}
	u.OTPCode, u.OTPExpiresAt = &code, &expiresAt
	s.users[email] = u
	return nil
}

func (s *MemoryUserStore) Activate(_ context.Context, email, code string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok || !u.HasLiveOTP(now) || *u.OTPCode != code {
		return model.ErrConflict
	}
	u.IsActive = true
	u.OTPCode, u.OTPExpiresAt = nil, nil
	s.users[email] = u
	return nil
}

func (s *MemoryUserStore) UpdateResetToken(_ context.Context, email, tokenHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return model.ErrNotFound
	}
	u.ResetTokenHash, u.ResetExpiresAt = &tokenHash, &expiresAt
	s.users[email] = u
	return nil
}

func (s *MemoryUserStore) FindByValidResetToken(_ context.Context, tokenHash string, now time.Time) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if liveReset(u, tokenHash, now) {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *MemoryUserStore) ConsumeReset(_ context.Context, id uuid.UUID, tokenHash, passwordDigest string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for email, u := range s.users {
		if u.ID != id {
			continue
		}
		if !liveReset(u, tokenHash, now) {
			return model.ErrConflict
		}
		u.PasswordDigest = passwordDigest
		u.ResetTokenHash, u.ResetExpiresAt = nil, nil
		s.users[email] = u
		return nil
	}
	return model.ErrConflict
}

// Put stores u as is, replacing any user with the same email.
func (s *MemoryUserStore) Put(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.Email] = u
}

func liveReset(u model.User, tokenHash string, now time.Time) bool {
	return u.ResetTokenHash != nil && *u.ResetTokenHash == tokenHash &&
		u.ResetExpiresAt != nil && u.ResetExpiresAt.After(now)
}

// FixedClock is a model.Clock whose time only moves when told to.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// RecordingMailer is a model.Mailer that remembers the last secret sent to
// each address and can be told to fail.
type RecordingMailer struct {
	mu     sync.Mutex
	OTPs   map[string]string
	Resets map[string]string
	Err    error
}

func NewRecordingMailer() *RecordingMailer {
	return &RecordingMailer{OTPs: map[string]string{}, Resets: map[string]string{}}
}

func (m *RecordingMailer) SendOTP(_ context.Context, address, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OTPs[address] = code
	return m.Err
}

func (m *RecordingMailer) SendResetLink(_ context.Context, address, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resets[address] = token
	return m.Err
}

func (m *RecordingMailer) LastOTP(address string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.OTPs[address]
}

func (m *RecordingMailer) LastReset(address string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Resets[address]
}
