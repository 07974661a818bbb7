package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FriendRequest represents the friend_requests table.
// One row per pending (sender, recipient) pair.
type FriendRequest struct {
	SenderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt   time.Time
}

// Friendship represents the friendships table. Every friendship is stored
// as two directed rows so each side can be queried by user_id alone.
type Friendship struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	FriendID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// Summary is the {id, name, email, image} projection of a user.
type Summary struct {
	ID    uuid.UUID
	Name  string
	Email string
	Image string
}

// Relations holds the three relationship sets of one user.
type Relations struct {
	Friends  []uuid.UUID
	Incoming []uuid.UUID
	Outgoing []uuid.UUID
}

// Profile is a user together with its relationship sets.
type Profile struct {
	User
	Relations
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

func (User) TableName() string {
	return "users"
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

func (Friendship) TableName() string {
	return "friendships"
}
