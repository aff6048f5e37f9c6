package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Locations lists the city names a user may declare as their location.
var Locations = []string{
	"Dhaka",
	"Chittagong",
	"Khulna",
	"Rajshahi",
	"Barisal",
	"Sylhet",
	"Rangpur",
	"Mymensingh",
}

// ValidLocation reports whether loc is one of the allowed city names.
func ValidLocation(loc string) bool {
	for _, l := range Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// User is an account identified by email. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	FirstName    string    `gorm:"size:150" json:"first_name"`
	LastName     string    `gorm:"size:150" json:"last_name"`
	Location     string    `gorm:"size:20" json:"location"`
	PhoneNumber  string    `gorm:"size:15" json:"phone_number"`
	IsStaff      bool      `gorm:"default:false" json:"-"`
	IsSuperuser  bool      `gorm:"default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Comments     []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// IsAdmin reports whether the user holds administrative privilege.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}

// NormalizeEmail lowercases and trims an address so lookups by the login key
// are case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeCreate normalizes the login email and backfills timestamps.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate refreshes the UpdatedAt timestamp.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
