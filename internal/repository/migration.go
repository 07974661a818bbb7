package repository

import (
	"fmt"

	"friendchat/internal/domain/message"
	"friendchat/internal/domain/user"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in creation order.
func Models() []any {
	return []any{
		&user.User{},
		&user.FriendRequest{},
		&user.Friendship{},
		&message.Message{},
	}
}

// InitSchema creates or updates the tables, primary keys and indexes.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to apply gorm migrations: %w", err)
	}
	return nil
}
