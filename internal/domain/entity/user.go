package entity

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Roles carried by users and by the role claim of issued tokens.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is an account of the learning platform.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'student'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the GORM table name.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may perform catalog writes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValidRole reports whether role is one the platform knows about.
func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleAdmin
}

// BeforeCreate assigns a fresh identifier when none was set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave hashes the password unless it already is a bcrypt hash.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] failed to hash password for email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword compares a plain password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
