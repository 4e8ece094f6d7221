// Package model defines the persistent entities.
package model

import "time"

// Roles assignable to a user. Self-registration always produces RoleUser;
// RoleAdmin exists only for seeded or operator-created accounts.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is one row of the users table. Password always holds a bcrypt hash,
// never plaintext. ProfilePicture is the server-generated file name, not the
// client-supplied one.
type User struct {
	Id             int       `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName      string    `json:"firstName" gorm:"column:first_name;not null"`
	LastName       string    `json:"lastName" gorm:"column:last_name;not null"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	Password       string    `json:"-" gorm:"not null"`
	Phone          string    `json:"phone"`
	Country        string    `json:"country"`
	Address        string    `json:"address"`
	Role           string    `json:"role" gorm:"not null;default:user"`
	ProfilePicture string    `json:"profilePicture" gorm:"column:profile_picture"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TableName keeps the table name the schema uses.
func (User) TableName() string {
	return "users"
}
