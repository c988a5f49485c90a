package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizlens/internal/auth"
	util "github.com/saulo-duarte/quizlens/internal/utils"
)

const DefaultRole = "user"

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150)" json:"last_name"`
	Role         string    `gorm:"type:varchar(50);not null" json:"role"`
	IsStaff      bool      `gorm:"not null" json:"-"`
	IsActive     bool      `gorm:"not null" json:"-"`
	PasswordHash *string   `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&u.ID)
	if u.Role == "" {
		u.Role = DefaultRole
	}
	return nil
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

func (u *User) Identity() auth.Identity {
	return auth.Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		IsStaff:  u.IsStaff,
	}
}
