package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account. Credentials live in Auth.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	FullName  *string   `gorm:"type:varchar(100)" json:"full_name"`
	Email     string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Auth *Auth `gorm:"foreignKey:UserID" json:"-"`
}

// Auth shares its primary key with User and is never serialized.
type Auth struct {
	UserID           uint   `gorm:"primaryKey;autoIncrement:false"`
	PasswordHash     string `gorm:"type:varchar(128);not null"`
	PermissionsLevel int    `gorm:"not null;default:1"`
	SessionVersion   string `gorm:"type:varchar(64);not null;default:''"`
}

// SetPassword hashes and sets the user's password
func (a *Auth) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (a *Auth) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// UserSummary is the public view of a user returned by auth endpoints.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserProfile extends UserSummary for the authenticated user.
type UserProfile struct {
	ID               uint      `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FullName         *string   `json:"full_name"`
	PermissionsLevel int       `json:"permissions_level"`
	Role             string    `json:"role"`
	CreatedAt        time.Time `json:"created_at"`
}

func (u *User) ToSummary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

func (u *User) ToProfile() UserProfile {
	p := UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
	if u.Auth != nil {
		p.PermissionsLevel = u.Auth.PermissionsLevel
	}
	p.Role = PermissionName(p.PermissionsLevel)
	return p
}
