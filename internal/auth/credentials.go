package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	dErrors "bima/pkg/domain-errors"
)

// User is an agent account allowed to operate the sales funnel.
type User struct {
	ID       string
	Username string
	Name     string
}

// Credentials is a fixed in-memory account list with bcrypt-hashed passwords.
// There is no self-service registration; accounts are seeded at startup.
type Credentials struct {
	mu    sync.RWMutex
	users map[string]credentialEntry
}

type credentialEntry struct {
	user User
	hash string
}

// dummyHash is compared against on unknown usernames so a miss takes as long
// as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bima-dummy-password"), bcrypt.DefaultCost)

func NewCredentials() *Credentials {
	return &Credentials{users: make(map[string]credentialEntry)}
}

// Add registers an account with the given plaintext password.
func (c *Credentials) Add(user User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return dErrors.New(dErrors.CodeInvalidInput, "password is too long")
		}
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[user.Username] = credentialEntry{user: user, hash: string(hash)}
	return nil
}

// Verify checks the username and password, returning the account on success.
// Unknown users and wrong passwords return the same error so login attempts
// cannot probe for account existence.
func (c *Credentials) Verify(username, password string) (User, error) {
	c.mu.RLock()
	entry, ok := c.users[username]
	c.mu.RUnlock()

	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return User{}, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(entry.hash), []byte(password)); err != nil {
		return User{}, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}
	return entry.user, nil
}
