package server

import (
	"friendchat/config"
	"friendchat/internal/handler"
	"friendchat/internal/repository"
	"friendchat/internal/services"
	"friendchat/internal/storage"
	"friendchat/pkg/logger"

	"gorm.io/gorm"
)

// Deps are the long-lived resources the handlers are built on. Cache may
// be nil.
type Deps struct {
	DB     *gorm.DB
	Cache  services.ProfileCache
	Files  storage.FileStore
	Checks map[string]handler.Pinger
}

// NewHandlers wires repositories, services and handlers. The returned auth
// service doubles as the token parser for SetupRoutes.
func NewHandlers(cfg *config.Config, deps Deps, l *logger.Logger) (*Handlers, *services.AuthService) {
	users := repository.NewUserRepository(deps.DB)
	friendships := repository.NewFriendshipRepository(deps.DB)
	messages := repository.NewMessageRepository(deps.DB)

	authService := services.NewAuthService(users, cfg, l)
	userService := services.NewUserService(users, deps.Cache, l)
	friendshipService := services.NewFriendshipService(friendships, deps.Cache, l)
	messageService := services.NewMessageService(messages, users, l)
	uploadService := services.NewUploadService(deps.Files, cfg.UploadMaxBytes, l)

	handlers := &Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Users:       handler.NewUserHandler(userService),
		Friendships: handler.NewFriendshipHandler(friendshipService),
		Messages:    handler.NewMessageHandler(messageService, uploadService),
		Health:      handler.NewHealthHandler(deps.Checks),
	}
	if local, ok := deps.Files.(*storage.LocalStore); ok {
		handlers.StaticDir = local.Dir()
	}
	return handlers, authService
}
