package model

import "time"

const (
	RoleAdmin   = "Admin"
	RoleStudent = "Student"
	RoleVisitor = "Visitor"
)

type User struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role      string    `bson:"role,omitempty" json:"role,omitempty"`
	Labels    []string  `bson:"labels,omitempty" json:"labels,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStudent, RoleVisitor:
		return true
	}
	return false
}
