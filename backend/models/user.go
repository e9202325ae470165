package models

import "gorm.io/datatypes"

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

type User struct {
	ID           uint                      `gorm:"primaryKey" json:"id"`
	Username     string                    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string                    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string                    `gorm:"not null" json:"-"`
	Roles        datatypes.JSONSlice[Role] `json:"roles"`
}

func (User) TableName() string {
	return "users"
}

func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PrimaryRole prefers TEACHER over STUDENT when the user holds both.
func (u User) PrimaryRole() Role {
	if u.HasRole(RoleTeacher) {
		return RoleTeacher
	}
	return RoleStudent
}
