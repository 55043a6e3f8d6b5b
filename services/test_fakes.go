package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/storeit/vaulted/core"
)

// FakeDirectory is a test-only fake implementing core.Directory.
// It stores records in maps and exposes error fields for behavior injection.
type FakeDirectory struct {
	mu        sync.RWMutex
	byEmail   map[string]*core.UserRecord
	byAccount map[string]*core.UserRecord
	nextID    int

	findErr   error
	createErr error
}

func NewFakeDirectory() *FakeDirectory {
	return &FakeDirectory{
		byEmail:   make(map[string]*core.UserRecord),
		byAccount: make(map[string]*core.UserRecord),
	}
}

func (f *FakeDirectory) FindUserByEmail(ctx context.Context, email string) (*core.UserRecord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return u, nil
}

func (f *FakeDirectory) FindUserByAccountID(ctx context.Context, accountID string) (*core.UserRecord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byAccount[accountID]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return u, nil
}

func (f *FakeDirectory) CreateUser(ctx context.Context, user *core.UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	// Mirrors a store-enforced unique index on email
	if _, exists := f.byEmail[user.Email]; exists {
		return core.ErrUserExists
	}
	if user.ID == "" {
		f.nextID++
		user.ID = fmt.Sprintf("doc-%d", f.nextID)
	}
	f.byEmail[user.Email] = user
	f.byAccount[user.AccountID] = user
	return nil
}

// Count returns the number of stored records.
func (f *FakeDirectory) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.byEmail)
}

// FakeIdentity is a test-only fake implementing core.Identity.
// Tokens and sessions are deterministic; error fields inject failures.
type FakeIdentity struct {
	mu         sync.Mutex
	nextToken  int
	tokenCalls int
	sessions   map[string]string // secret -> accountID

	tokenErr   error
	sessionErr error
	getErr     error
	deleteErr  error

	deletedSecrets []string
}

func NewFakeIdentity() *FakeIdentity {
	return &FakeIdentity{sessions: make(map[string]string)}
}

func (f *FakeIdentity) CreateEmailToken(ctx context.Context, email string) (*core.ProviderToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenCalls++
	if f.tokenErr != nil {
		return nil, f.tokenErr
	}
	f.nextToken++
	return &core.ProviderToken{UserID: fmt.Sprintf("acct-%d", f.nextToken)}, nil
}

func (f *FakeIdentity) CreateSession(ctx context.Context, accountID, passcode string) (*core.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	secret := "secret-for-" + accountID
	f.sessions[secret] = accountID
	return &core.Session{ID: "sess-" + accountID, Secret: secret}, nil
}

func (f *FakeIdentity) CurrentAccountID(ctx context.Context, secret string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	accountID, ok := f.sessions[secret]
	if !ok {
		return "", errors.New("session not found")
	}
	return accountID, nil
}

func (f *FakeIdentity) DeleteSession(ctx context.Context, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedSecrets = append(f.deletedSecrets, secret)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.sessions, secret)
	return nil
}

// SeedSession registers a live session for the account and returns its
// secret, as if the passcode exchange already happened.
func (f *FakeIdentity) SeedSession(accountID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	secret := "secret-for-" + accountID
	f.sessions[secret] = accountID
	return secret
}

// FailCurrentAccountID makes subsequent session lookups return err.
func (f *FakeIdentity) FailCurrentAccountID(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

// TokenCalls returns how many OTPs were requested.
func (f *FakeIdentity) TokenCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenCalls
}
