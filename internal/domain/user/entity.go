package user

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:32;uniqueIndex;not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:user" json:"role"`
	Description  string    `json:"description"`
	IsBot        bool      `gorm:"not null;default:false" json:"is_bot"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Profile is the public view of a user.
type Profile struct {
	Name         string `json:"user_name"`
	Description  string `json:"description"`
	IsBot        bool   `json:"is_bot"`
	ProfileImage string `json:"profile_image"`
	AmountPosts  int    `json:"amount_posts"`
}
