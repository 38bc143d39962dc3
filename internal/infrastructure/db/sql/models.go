package sql

import (
	"strings"
	"time"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:128;not null;index:idx_users_name_email,priority:1"`
	Email        string `gorm:"size:128;not null;uniqueIndex;index:idx_users_name_email,priority:2"`
	PasswordHash string `gorm:"size:128;not null"`
	// Roles is a comma-separated set, e.g. "ROLE_USER,ROLE_ADMIN".
	Roles      string    `gorm:"size:64;not null"`
	Registered time.Time `gorm:"not null"`
	Enabled    bool      `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Roles:        strings.Join(u.Roles, ","),
		Registered:   u.Registered.UTC(),
		Enabled:      u.Enabled,
	}
}

func (m userModel) toDomain() *domain.User {
	var roles []string
	if m.Roles != "" {
		roles = strings.Split(m.Roles, ",")
	}
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Roles:        roles,
		Registered:   m.Registered.UTC(),
		Enabled:      m.Enabled,
	}
}

type restaurantModel struct {
	ID   string `gorm:"primaryKey;size:36"`
	Name string `gorm:"size:128;not null;index"`
}

func (restaurantModel) TableName() string { return "restaurants" }

type dishModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	RestaurantID string    `gorm:"size:36;not null;uniqueIndex:idx_dishes_restaurant_date_name,priority:1"`
	Name         string    `gorm:"size:128;not null;uniqueIndex:idx_dishes_restaurant_date_name,priority:3"`
	Date         time.Time `gorm:"not null;uniqueIndex:idx_dishes_restaurant_date_name,priority:2;index"`
	Price        int64     `gorm:"not null"`
}

func (dishModel) TableName() string { return "dishes" }

func (m dishModel) toDomain() *domain.Dish {
	return &domain.Dish{ID: m.ID, RestaurantID: m.RestaurantID, Name: m.Name, Date: m.Date.UTC(), Price: m.Price}
}

type voteModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	UserID       string    `gorm:"size:36;not null;uniqueIndex:idx_votes_user_date,priority:1"`
	RestaurantID string    `gorm:"size:36;not null;index"`
	Date         time.Time `gorm:"not null;uniqueIndex:idx_votes_user_date,priority:2;index"`
	Time         time.Time `gorm:"column:cast_at;not null"`
}

func (voteModel) TableName() string { return "votes" }

func (m voteModel) toDomain() *domain.Vote {
	return &domain.Vote{ID: m.ID, UserID: m.UserID, RestaurantID: m.RestaurantID, Date: m.Date.UTC(), Time: m.Time.UTC()}
}
