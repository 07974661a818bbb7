package httpdto

// FriendRequestRequest is used for POST /friend-request
type FriendRequestRequest struct {
	CurrentUserID  string `json:"currentUserId" form:"currentUserId" binding:"required"`
	SelectedUserID string `json:"selectedUserId" form:"selectedUserId" binding:"required"`
}

// AcceptRequest is used for POST /friend-request/accept. Older clients
// spell the recipient field recepientId.
type AcceptRequest struct {
	SenderID          string `json:"senderId" form:"senderId" binding:"required"`
	RecipientID       string `json:"recipientId" form:"recipientId"`
	LegacyRecipientID string `json:"recepientId" form:"recepientId"`
}

func (r AcceptRequest) Recipient() string {
	return firstNonEmpty(r.RecipientID, r.LegacyRecipientID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
