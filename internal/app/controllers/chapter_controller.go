package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/app/services"
	"github.com/greeklink/greeklink/internal/middleware"
)

// ChapterController handles chapter endpoints
type ChapterController struct {
	chapterService *services.ChapterService
}

// NewChapterController creates a new ChapterController
func NewChapterController(chapterService *services.ChapterService) *ChapterController {
	return &ChapterController{chapterService: chapterService}
}

// ListChapters retrieves all chapters
// @Summary List chapters
// @Description Retrieves all chapters ordered by name
// @Tags chapters
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Chapter} "Chapters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chapters [get]
func (c *ChapterController) ListChapters(ctx *gin.Context) {
	chapters, err := c.chapterService.ListChapters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chapters))
}

// GetChapter retrieves a chapter by ID
// @Summary Get chapter by ID
// @Description Retrieves a single chapter
// @Tags chapters
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {object} dto.APIResponse{data=models.Chapter} "Chapter"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /chapters/{id} [get]
func (c *ChapterController) GetChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	chapter, err := c.chapterService.GetChapter(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chapter))
}

// CreateChapter creates a chapter
// @Summary Create a chapter
// @Description Creates a new chapter (admin only)
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChapterRequest true "Chapter data"
// @Success 201 {object} dto.APIResponse{data=models.Chapter} "Chapter created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Chapter already exists"
// @Router /chapters [post]
func (c *ChapterController) CreateChapter(ctx *gin.Context) {
	var req dto.CreateChapterRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	chapter, err := c.chapterService.CreateChapter(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(chapter))
}

// UpdateChapter updates a chapter
// @Summary Update a chapter
// @Description Updates an existing chapter (admin only)
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param request body dto.UpdateChapterRequest true "Updated chapter data"
// @Success 200 {object} dto.APIResponse{data=models.Chapter} "Chapter updated"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Failure 409 {object} dto.ErrorResponse "Name or letters already taken"
// @Router /chapters/{id} [put]
func (c *ChapterController) UpdateChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateChapterRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	chapter, err := c.chapterService.UpdateChapter(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chapter))
}

// DeleteChapter deletes a chapter
// @Summary Delete a chapter
// @Description Deletes a chapter that has no members (admin only)
// @Tags chapters
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Success 204 "Chapter deleted"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Failure 409 {object} dto.ErrorResponse "Chapter still has members"
// @Router /chapters/{id} [delete]
func (c *ChapterController) DeleteChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.chapterService.DeleteChapter(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
