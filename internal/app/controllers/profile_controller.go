package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/app/services"
	"github.com/greeklink/greeklink/internal/middleware"
	"github.com/greeklink/greeklink/internal/pkg/drafts"
)

// ProfileController handles member profile endpoints
type ProfileController struct {
	profileService *services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetMyProfile retrieves the authenticated member's profile
// @Summary Get own profile
// @Description Retrieves the authenticated member's profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profiles/me [get]
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromProfile(profile)))
}

// GetProfile retrieves another member's profile
// @Summary Get profile by ID
// @Description Retrieves a member's profile by id
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/{id} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.profileService.GetProfile(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromProfile(profile)))
}

// UpdateMyProfile updates the authenticated member's profile
// @Summary Update own profile
// @Description Applies a partial update and optionally syncs the alumni record
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid field value"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profiles/me [put]
func (c *ProfileController) UpdateMyProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromProfile(profile)))
}

// SaveDraft autosaves in-progress profile form state
// @Summary Autosave profile draft
// @Description Stores in-progress form state with a TTL; no validation is applied
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]interface{} true "Form state"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileDraft} "Draft saved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profiles/me/draft [put]
func (c *ProfileController) SaveDraft(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var payload map[string]interface{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid draft payload")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	draft, err := c.profileService.SaveDraft(ctx, userID, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(draft))
}

// GetDraft retrieves the autosaved profile draft
// @Summary Get profile draft
// @Description Retrieves the autosaved form state if one is still cached
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileDraft} "Draft"
// @Failure 404 {object} dto.ErrorResponse "No draft cached"
// @Router /profiles/me/draft [get]
func (c *ProfileController) GetDraft(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	draft, err := c.profileService.GetDraft(ctx, userID)
	if err != nil {
		if errors.Is(err, drafts.ErrDraftNotFound) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "No draft found")
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(draft))
}

// DiscardDraft deletes the autosaved profile draft
// @Summary Discard profile draft
// @Description Deletes the autosaved form state
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Draft discarded"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profiles/me/draft [delete]
func (c *ProfileController) DiscardDraft(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.profileService.DiscardDraft(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Draft discarded"))
}

// requireUserID extracts the authenticated member id, writing the
// standard unauthorized envelope when missing.
func requireUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}
