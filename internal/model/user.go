package model

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// MinPasswordLength is the minimum length of a plaintext password.
	MinPasswordLength = 6

	bcryptCost = 10
)

var (
	// ErrPasswordTooShort is returned by the save hook for short passwords.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrPasswordMissing is returned when a user would be saved without a hash.
	ErrPasswordMissing = errors.New("password is required")
)

// User represents an authenticated user in the system.
//
// Password carries a plaintext only between construction and the first save;
// the BeforeSave hook hashes it into PasswordHash and clears it.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password     string    `json:"-" gorm:"-"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the public projection of a user attached to authenticated requests.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeSave assigns an id, normalizes fields and hashes a pending plaintext password.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Name = strings.TrimSpace(u.Name)
	u.Email = NormalizeEmail(u.Email)

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcryptCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hash)
		u.Password = ""
	}

	if u.PasswordHash == "" {
		return ErrPasswordMissing
	}
	return nil
}

// MatchPassword compares a plaintext password against the stored hash.
func (u *User) MatchPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Identity returns the public projection of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}

var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcryptCost)
	return hash
})

// BurnPasswordCheck performs a bcrypt comparison against a fixed hash. Login
// calls it when no user matches so unknown emails cost as much as wrong passwords.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
}
