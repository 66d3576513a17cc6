package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/app/services"
	"github.com/greeklink/greeklink/internal/middleware"
)

// ConnectionController handles connection endpoints
type ConnectionController struct {
	connectionService *services.ConnectionService
}

// NewConnectionController creates a new ConnectionController
func NewConnectionController(connectionService *services.ConnectionService) *ConnectionController {
	return &ConnectionController{connectionService: connectionService}
}

// RequestConnection creates a pending connection request
// @Summary Request a connection
// @Description Sends a connection request to another member
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateConnectionRequest true "Addressee"
// @Success 201 {object} dto.APIResponse{data=dto.ConnectionResponse} "Request created"
// @Failure 400 {object} dto.ErrorResponse "Self-connection or invalid data"
// @Failure 404 {object} dto.ErrorResponse "Addressee not found"
// @Failure 409 {object} dto.ErrorResponse "Connection already exists"
// @Router /connections [post]
func (c *ConnectionController) RequestConnection(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateConnectionRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	connection, err := c.connectionService.RequestConnection(ctx, userID, req.AddresseeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromConnection(connection)))
}

// RespondToConnection accepts or declines a pending request
// @Summary Respond to a connection request
// @Description Accepts or declines a pending request; only the addressee may respond
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Connection ID"
// @Param action query string true "accept or decline"
// @Success 200 {object} dto.APIResponse{data=dto.ConnectionResponse} "Updated connection"
// @Failure 403 {object} dto.ErrorResponse "Not the addressee"
// @Failure 404 {object} dto.ErrorResponse "Connection not found"
// @Failure 409 {object} dto.ErrorResponse "Already answered"
// @Router /connections/{id}/respond [put]
func (c *ConnectionController) RespondToConnection(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	action := ctx.Query("action")
	if action != "accept" && action != "decline" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid action")
		errorDetail = errorDetail.WithDetails("action must be accept or decline")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	connection, err := c.connectionService.RespondToConnection(ctx, id, userID, action == "accept")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromConnection(connection)))
}

// ListConnections retrieves the member's connections
// @Summary List connections
// @Description Retrieves the member's connections, optionally filtered by status
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, accepted or declined"
// @Success 200 {object} dto.APIResponse{data=[]dto.ConnectionResponse} "Connections"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /connections [get]
func (c *ConnectionController) ListConnections(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var status *models.ConnectionStatus
	if statusStr := ctx.Query("status"); statusStr != "" {
		s := models.ConnectionStatus(statusStr)
		switch s {
		case models.ConnectionStatusPending, models.ConnectionStatusAccepted, models.ConnectionStatusDeclined:
			status = &s
		default:
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status")
			errorDetail = errorDetail.WithDetails("status must be pending, accepted or declined")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	connections, err := c.connectionService.ListConnections(ctx, userID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ConnectionResponse, 0, len(connections))
	for _, conn := range connections {
		responses = append(responses, dto.FromConnection(conn))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// RemoveConnection deletes a connection edge
// @Summary Remove a connection
// @Description Deletes a connection the member participates in
// @Tags connections
// @Security BearerAuth
// @Param id path int true "Connection ID"
// @Success 204 "Connection removed"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Connection not found"
// @Router /connections/{id} [delete]
func (c *ConnectionController) RemoveConnection(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.connectionService.RemoveConnection(ctx, id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
