package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider     = (*MockAuthProvider)(nil)
	_ ports.SessionStore     = (*MemorySessionStore)(nil)
	_ ports.IdentityProvider = (*MockIdentityProvider)(nil)
	_ ports.Mailer           = (*MockMailer)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity

	// Internal state tracking for deterministic behavior
	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultUser: domainauth.Identity{
			UserID:    "mock-user-1",
			Name:      "Mock User",
			Email:     "mock.user@example.com",
			Groups:    []string{"users"},
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	state := fmt.Sprintf("%s-%d", m.StatePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", m.NoncePrefix, m.callCount)
	return m.AuthURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("code is required")
	}
	return m.DefaultUser, nil
}

// MemorySessionStore is an in-memory session store for tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, errors.New("session not found")
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// MockIdentityProvider is an in-memory credential store for tests. It keeps
// plain passwords; never use outside tests.
type MockIdentityProvider struct {
	mu        sync.RWMutex
	passwords map[string]string

	CreateErr error
	VerifyErr error
	RotateErr error
}

// NewMockIdentityProvider creates an empty credential store.
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{passwords: make(map[string]string)}
}

func (m *MockIdentityProvider) CreateCredential(_ context.Context, userID, password string) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passwords[userID] = password
	return nil
}

func (m *MockIdentityProvider) VerifyCredential(_ context.Context, userID, password string) (bool, error) {
	if m.VerifyErr != nil {
		return false, m.VerifyErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored, ok := m.passwords[userID]
	return ok && stored == password, nil
}

func (m *MockIdentityProvider) RotateCredential(_ context.Context, userID, newPassword string) error {
	if m.RotateErr != nil {
		return m.RotateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.passwords[userID]; !ok {
		return errors.New("credential not found")
	}
	m.passwords[userID] = newPassword
	return nil
}

func (m *MockIdentityProvider) DeleteCredential(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.passwords, userID)
	return nil
}

// Password returns the stored plain password for assertions.
func (m *MockIdentityProvider) Password(userID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.passwords[userID]
	return p, ok
}

// MockMailer records sent emails for assertions.
type MockMailer struct {
	mu   sync.Mutex
	Sent []ports.Email

	SendErr error
}

// NewMockMailer creates an empty mailer double.
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(_ context.Context, email ports.Email) (string, error) {
	if m.SendErr != nil {
		return "", m.SendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, email)
	return fmt.Sprintf("msg-%d", len(m.Sent)), nil
}

// LastSent returns the most recently sent email, if any.
func (m *MockMailer) LastSent() (ports.Email, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return ports.Email{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
