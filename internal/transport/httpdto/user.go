package httpdto

import (
	"friendchat/internal/domain/user"

	"github.com/google/uuid"
)

// UserDTO is the full user projection. The password hash is never part of it.
type UserDTO struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Email                  string   `json:"email"`
	Image                  string   `json:"image"`
	Friends                []string `json:"friends"`
	IncomingFriendRequests []string `json:"incomingFriendRequests"`
	OutgoingFriendRequests []string `json:"outgoingFriendRequests"`
}

// UserSummaryDTO is the {id, name, email, image} projection.
type UserSummaryDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

func ToUserDTO(p user.Profile) UserDTO {
	return UserDTO{
		ID:                     p.ID.String(),
		Name:                   p.Name,
		Email:                  p.Email,
		Image:                  p.Image,
		Friends:                IDStrings(p.Friends),
		IncomingFriendRequests: IDStrings(p.Incoming),
		OutgoingFriendRequests: IDStrings(p.Outgoing),
	}
}

func ToUserDTOs(profiles []user.Profile) []UserDTO {
	out := make([]UserDTO, len(profiles))
	for i, p := range profiles {
		out[i] = ToUserDTO(p)
	}
	return out
}

func ToUserSummaryDTOs(list []user.Summary) []UserSummaryDTO {
	out := make([]UserSummaryDTO, len(list))
	for i, s := range list {
		out[i] = UserSummaryDTO{ID: s.ID.String(), Name: s.Name, Email: s.Email, Image: s.Image}
	}
	return out
}

func IDStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
