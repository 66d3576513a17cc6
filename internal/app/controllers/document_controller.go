package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/app/services"
	"github.com/greeklink/greeklink/internal/middleware"
	"github.com/greeklink/greeklink/internal/pkg/helpers"
)

// DocumentController handles chapter document endpoints
type DocumentController struct {
	documentService *services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService *services.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// UploadDocument uploads a document to a chapter
// @Summary Upload a chapter document
// @Description Stores a file in the chapter's document manager
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param chapterId path int true "Chapter ID"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=dto.DocumentResponse} "Document uploaded"
// @Failure 400 {object} dto.ErrorResponse "File missing, too large or wrong type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /chapters/{chapterId}/documents [post]
func (c *DocumentController) UploadDocument(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	chapterID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	document, err := c.documentService.UploadDocument(ctx, fileHeader, chapterID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromDocument(document)))
}

// ListDocuments retrieves a page of a chapter's documents
// @Summary List chapter documents
// @Description Retrieves a chapter's documents, newest first
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param chapterId path int true "Chapter ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]dto.DocumentResponse} "Documents"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /chapters/{chapterId}/documents [get]
func (c *DocumentController) ListDocuments(ctx *gin.Context) {
	chapterID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", strconv.Itoa(helpers.DefaultPageSize)))

	documents, total, err := c.documentService.ListDocuments(ctx, chapterID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.DocumentResponse, 0, len(documents))
	for _, d := range documents {
		responses = append(responses, dto.FromDocument(d))
	}

	response := dto.NewSuccessResponse(gin.H{
		"documents":  responses,
		"pagination": dto.NewPaginationInfo(total, page, size),
	})
	ctx.JSON(http.StatusOK, response)
}

// DeleteDocument removes a document
// @Summary Delete a chapter document
// @Description Removes a document; only the uploader or an admin may delete
// @Tags documents
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 204 "Document deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the uploader"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /documents/{id} [delete]
func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.documentService.DeleteDocument(ctx, id, userID, middleware.IsAdminFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
