package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/app/services"
	"github.com/greeklink/greeklink/internal/middleware"
)

// MessageController handles direct messaging endpoints
type MessageController struct {
	messageService *services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// SendMessage sends a direct message to a connected member
// @Summary Send a direct message
// @Description Sends a message to a member the sender shares an accepted connection with
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Recipient member ID"
// @Param request body dto.SendMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Empty content or not connected"
// @Failure 404 {object} dto.ErrorResponse "Recipient not found"
// @Router /messages/to/{userId} [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	recipientID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	message, err := c.messageService.SendMessage(ctx, userID, recipientID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToMessageResponse(message)))
}

// ListConversations retrieves the member's conversation threads
// @Summary List conversations
// @Description Retrieves the member's conversations, most recently active first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse} "Conversations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /messages/conversations [get]
func (c *MessageController) ListConversations(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	conversations, err := c.messageService.ListConversations(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversations))
}

// GetMessages retrieves a page of a conversation's messages
// @Summary Get conversation messages
// @Description Retrieves messages of a conversation, newest first with an optional before cursor
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param before query string false "Only messages created before this RFC3339 timestamp"
// @Param limit query int false "Page size, defaults to 50"
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse} "Messages"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Router /messages/conversations/{id} [get]
func (c *MessageController) GetMessages(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.GetMessagesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	messages, err := c.messageService.GetMessages(ctx, id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, dto.ToMessageResponse(m))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}
