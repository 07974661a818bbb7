package handler

import (
	"context"
	"net/http"

	"friendchat/internal/domain/user"
	"friendchat/internal/services"
	"friendchat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FriendshipHandler struct {
	service *services.FriendshipService
}

func NewFriendshipHandler(service *services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{service: service}
}

// SendRequest handles POST /friend-request
func (h *FriendshipHandler) SendRequest(c *gin.Context) {
	var req httpdto.FriendRequestRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBadRequest(c, "currentUserId and selectedUserId are required")
		return
	}
	fromID, err := parseUUID(req.CurrentUserID, "currentUserId")
	if err != nil {
		writeError(c, err)
		return
	}
	toID, err := parseUUID(req.SelectedUserID, "selectedUserId")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.service.SendRequest(c.Request.Context(), fromID, toID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewMessageResponse("Friend request sent"))
}

// Accept handles POST /friend-request/accept
func (h *FriendshipHandler) Accept(c *gin.Context) {
	var req httpdto.AcceptRequest
	if err := c.ShouldBind(&req); err != nil || req.Recipient() == "" {
		writeBadRequest(c, "senderId and recipientId are required")
		return
	}
	senderID, err := parseUUID(req.SenderID, "senderId")
	if err != nil {
		writeError(c, err)
		return
	}
	recipientID, err := parseUUID(req.Recipient(), "recipientId")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.service.Accept(c.Request.Context(), senderID, recipientID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewMessageResponse("Friend Request accepted"))
}

// ListIncoming handles GET /friend-request/:userId
func (h *FriendshipHandler) ListIncoming(c *gin.Context) {
	h.listSummaries(c, h.service.ListIncoming)
}

// ListOutgoing handles GET /friend-requests/sent/:userId
func (h *FriendshipHandler) ListOutgoing(c *gin.Context) {
	h.listSummaries(c, h.service.ListOutgoing)
}

// ListFriends handles GET /accepted-friends/:userId
func (h *FriendshipHandler) ListFriends(c *gin.Context) {
	h.listSummaries(c, h.service.ListFriends)
}

// ListFriendIDs handles GET /friends/:userId
func (h *FriendshipHandler) ListFriendIDs(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}
	ids, err := h.service.ListFriendIDs(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.IDStrings(ids))
}

func (h *FriendshipHandler) listSummaries(c *gin.Context, list func(context.Context, uuid.UUID) ([]user.Summary, error)) {
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}
	out, err := list(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.ToUserSummaryDTOs(out))
}
