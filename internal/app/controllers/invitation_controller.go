package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/app/services"
	"github.com/greeklink/greeklink/internal/middleware"
)

// InvitationController handles invitation endpoints
type InvitationController struct {
	invitationService *services.InvitationService
}

// NewInvitationController creates a new InvitationController
func NewInvitationController(invitationService *services.InvitationService) *InvitationController {
	return &InvitationController{invitationService: invitationService}
}

// CreateInvitation issues an invitation
// @Summary Invite a prospective member
// @Description Issues an invitation token and mails the registration link
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInvitationRequest true "Invitation data"
// @Success 201 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /invitations [post]
func (c *InvitationController) CreateInvitation(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	invitation, err := c.invitationService.CreateInvitation(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromInvitation(invitation, time.Now())))
}

// GetInvitationByToken retrieves an invitation for the acceptance page
// @Summary Look up an invitation token
// @Description Retrieves a redeemable invitation by token for the public registration page
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 410 {object} dto.ErrorResponse "Invitation no longer redeemable"
// @Router /invitations/{token} [get]
func (c *InvitationController) GetInvitationByToken(ctx *gin.Context) {
	token := ctx.Param("token")
	if token == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invitation token is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	invitation, err := c.invitationService.GetInvitationByToken(ctx, token)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromInvitation(invitation, time.Now())))
}

// ListInvitations retrieves the member's sent invitations
// @Summary List sent invitations
// @Description Retrieves the invitations the member has issued, newest first
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.InvitationResponse} "Invitations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /invitations [get]
func (c *InvitationController) ListInvitations(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	invitations, err := c.invitationService.ListInvitations(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	now := time.Now()
	responses := make([]dto.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		responses = append(responses, dto.FromInvitation(inv, now))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// RevokeInvitation withdraws a pending invitation
// @Summary Revoke an invitation
// @Description Withdraws a pending invitation; only the inviter or an admin may revoke
// @Tags invitations
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Success 204 "Invitation revoked"
// @Failure 403 {object} dto.ErrorResponse "Not the inviter"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 410 {object} dto.ErrorResponse "Already accepted or revoked"
// @Router /invitations/{id} [delete]
func (c *InvitationController) RevokeInvitation(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.invitationService.RevokeInvitation(ctx, id, userID, middleware.IsAdminFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
