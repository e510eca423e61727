package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"

	c "cvmatch/internal/core/domain/common"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		FullName:     input.FullName,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by id %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].ID == id {
			r.Users[ix].PasswordHash = c.NewOptional(password, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetLastLoginAt(ctx context.Context, id ID, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].ID == id {
			r.Users[ix].LastLoginAt = c.NewOptional(at, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	UserRepository *FakeUserRepository
	Sessions       map[SessionToken]ID
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository *FakeUserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserRepository: userRepository,
		Sessions:       make(map[SessionToken]ID),
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Sessions[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userID, ok := r.Sessions[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userID)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (userID ID, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.Sessions[token]
	if !ok {
		return userID, ErrSessionDoesNotExist
	}
	delete(r.Sessions, token)
	return userID, nil
}

func (r *FakeSessionRepository) SessionCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Sessions)
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateToken() SessionToken {
	return SessionToken(g.Token)
}

type FakeResetTokenRepository struct {
	Tokens      []ResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetTokenRepository() *FakeResetTokenRepository {
	return &FakeResetTokenRepository{Tokens: make([]ResetToken, 0, 10)}
}

func (r *FakeResetTokenRepository) Create(ctx context.Context, input CreateResetTokenInput) (t ResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not create reset token for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	t = ResetToken{
		TokenHash: input.TokenHash,
		UserID:    input.UserID,
		ExpiresAt: input.ExpiresAt,
	}
	r.Tokens = append(r.Tokens, t)
	return t, nil
}

func (r *FakeResetTokenRepository) ListActive(ctx context.Context, now time.Time) ([]ResetToken, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list reset tokens")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	active := make([]ResetToken, 0, len(r.Tokens))
	for _, t := range r.Tokens {
		if t.ExpiresAt.After(now) {
			active = append(active, t)
		}
	}
	return active, nil
}

func (r *FakeResetTokenRepository) DeleteForUser(ctx context.Context, userID ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete reset tokens for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := r.Tokens[:0]
	for _, t := range r.Tokens {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	r.Tokens = kept
	return nil
}

func (r *FakeResetTokenRepository) TokensForUser(userID ID) []ResetToken {
	r.lock.Lock()
	defer r.lock.Unlock()
	tokens := make([]ResetToken, 0)
	for _, t := range r.Tokens {
		if t.UserID == userID {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

type FakeResetTokenGenerator struct {
	Token RawResetToken
}

func NewFakeResetTokenGenerator(token string) *FakeResetTokenGenerator {
	return &FakeResetTokenGenerator{Token: RawResetToken(token)}
}

func (g *FakeResetTokenGenerator) GenerateResetToken() RawResetToken {
	return g.Token
}

type FakeResetTokenHasher struct{}

func NewFakeResetTokenHasher() *FakeResetTokenHasher {
	return &FakeResetTokenHasher{}
}

func (h *FakeResetTokenHasher) HashToken(token RawResetToken) (ResetTokenHash, error) {
	return ResetTokenHash("hashed::" + string(token)), nil
}

func (h *FakeResetTokenHasher) ValidateToken(token RawResetToken, hash ResetTokenHash) bool {
	return ResetTokenHash("hashed::"+string(token)) == hash
}

type SentResetToken struct {
	User  User
	Token RawResetToken
}

type FakeResetTokenSender struct {
	Sent        []SentResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetTokenSender() *FakeResetTokenSender {
	return &FakeResetTokenSender{}
}

func (s *FakeResetTokenSender) SendResetToken(ctx context.Context, u User, token RawResetToken) error {
	if s.ReturnError {
		return fmt.Errorf("could not send reset token to user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentResetToken{User: u, Token: token})
	return nil
}

func (s *FakeResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}
