package handler

import (
	"errors"
	"io"
	"net/http"

	"friendchat/internal/domain/message"
	"friendchat/internal/services"
	"friendchat/internal/transport/httpdto"
	friendchat_errors "friendchat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	service *services.MessageService
	uploads *services.UploadService
}

func NewMessageHandler(service *services.MessageService, uploads *services.UploadService) *MessageHandler {
	return &MessageHandler{service: service, uploads: uploads}
}

// Send handles POST /messages. Image messages are multipart requests
// carrying the file under imageFile.
func (h *MessageHandler) Send(c *gin.Context) {
	var req httpdto.SendMessageRequest
	if err := c.ShouldBind(&req); err != nil || req.Recipient() == "" {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, friendchat_errors.ErrTooLarge)
			return
		}
		writeBadRequest(c, "senderId, recipientId and messageType are required")
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

	in := services.SendMessageInput{
		SenderID:    senderID,
		RecipientID: recipientID,
		Type:        message.Type(req.MessageType),
		Body:        req.MessageText,
	}

	if in.Type == message.TypeImage {
		ref, err := h.storeImage(c)
		if err != nil {
			writeError(c, err)
			return
		}
		in.ImageRef = ref
	}

	if _, err := h.service.Send(c.Request.Context(), in); err != nil {
		if in.ImageRef != "" {
			h.uploads.Discard(c.Request.Context(), in.ImageRef)
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewMessageResponse("Message sent"))
}

// storeImage returns "" without an error when no file was attached, so the
// message service reports the missing image.
func (h *MessageHandler) storeImage(c *gin.Context) (string, error) {
	fh, err := c.FormFile(httpdto.ImageFileField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", friendchat_errors.Invalid("malformed multipart body")
	}

	return h.uploads.Store(c.Request.Context(), services.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open:        func() (io.ReadCloser, error) { return fh.Open() },
	})
}

// List handles GET /messages/:senderId/:recepientId
func (h *MessageHandler) List(c *gin.Context) {
	a, ok := parseUUIDParam(c, "senderId")
	if !ok {
		return
	}
	b, ok := parseUUIDParam(c, "recepientId")
	if !ok {
		return
	}

	msgs, err := h.service.ListBetween(c.Request.Context(), a, b)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.ToMessageDTOs(msgs))
}

// DeleteMany handles POST /deleteMessages
func (h *MessageHandler) DeleteMany(c *gin.Context) {
	var req httpdto.DeleteMessagesRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBadRequest(c, "messages must be a list of message ids")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.Messages))
	for _, raw := range req.Messages {
		id, err := parseUUID(raw, "message id")
		if err != nil {
			writeError(c, err)
			return
		}
		ids = append(ids, id)
	}

	if _, err := h.service.DeleteMany(c.Request.Context(), ids); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewMessageResponse("Messages deleted"))
}
