package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/app/services"
	"github.com/greeklink/greeklink/internal/middleware"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/logger"
)

// AlumniController handles the alumni directory endpoints
type AlumniController struct {
	alumniService  *services.AlumniService
	chapterService *services.ChapterService
}

// NewAlumniController creates a new AlumniController
func NewAlumniController(alumniService *services.AlumniService, chapterService *services.ChapterService) *AlumniController {
	return &AlumniController{
		alumniService:  alumniService,
		chapterService: chapterService,
	}
}

// ListAlumni handles the directory listing
// @Summary List alumni
// @Description Retrieves the filtered, ranked alumni directory
// @Tags alumni
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size, capped at 100"
// @Param search query string false "Free text across name, company, job title and industry"
// @Param industry query string false "Industry substring filter"
// @Param chapter query string false "Chapter id or name, 'all' disables"
// @Param location query string false "Location substring filter"
// @Param graduationYear query string false "Graduation year, 'older' for 2019 and earlier, 'All Years' disables"
// @Param activelyHiring query bool false "Only alumni flagged as hiring"
// @Param state query string false "Two-letter US state code"
// @Param activityStatus query string false "Activity bucket: hot, warm or cold"
// @Param showActiveOnly query bool false "Drop cold records"
// @Success 200 {object} dto.AlumniDirectoryResponse "Directory page"
// @Failure 400 {object} dto.DirectoryErrorResponse "Invalid filter value"
// @Failure 500 {object} dto.DirectoryErrorResponse "Internal server error"
// @Router /api/alumni [get]
func (c *AlumniController) ListAlumni(ctx *gin.Context) {
	query, err := c.parseDirectoryQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.DirectoryErrorResponse{
			Error:   "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}

	viewer := middleware.ViewerFromContext(ctx)

	response, err := c.alumniService.ListDirectory(ctx, query, viewer)
	if err != nil {
		c.writeDirectoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// parseDirectoryQuery turns the raw query string into the typed filter
// set. The chapter value is resolved into an explicit reference here so
// downstream code never re-guesses its shape.
func (c *AlumniController) parseDirectoryQuery(ctx *gin.Context) (*dto.AlumniDirectoryQuery, error) {
	query := &dto.AlumniDirectoryQuery{
		Search:   strings.TrimSpace(ctx.Query("search")),
		Industry: strings.TrimSpace(ctx.Query("industry")),
		Location: strings.TrimSpace(ctx.Query("location")),
	}

	if pageStr := ctx.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return nil, apperrors.NewBadRequestError("page must be a number")
		}
		query.Page = page
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, apperrors.NewBadRequestError("limit must be a number")
		}
		query.Limit = limit
	}

	chapterValue := ctx.Query("chapter")
	if chapterValue == "" {
		// The caller's own chapter serves as the fallback filter
		chapterValue = ctx.Query("userChapter")
	}
	query.Chapter = c.chapterService.ResolveChapterRef(chapterValue)

	if gy := strings.TrimSpace(ctx.Query("graduationYear")); gy != "" {
		switch {
		case strings.EqualFold(gy, "All Years"):
			query.GraduationYear = dto.GraduationYearFilter{Disabled: true}
		case strings.EqualFold(gy, "older"):
			query.GraduationYear = dto.GraduationYearFilter{Older: true}
		default:
			year, err := strconv.Atoi(gy)
			if err != nil {
				return nil, apperrors.NewBadRequestError("graduationYear must be a year, 'older' or 'All Years'")
			}
			query.GraduationYear = dto.GraduationYearFilter{Year: year}
		}
	} else {
		query.GraduationYear = dto.GraduationYearFilter{Disabled: true}
	}

	if hiringStr := ctx.Query("activelyHiring"); hiringStr != "" {
		hiring, err := strconv.ParseBool(hiringStr)
		if err != nil {
			return nil, apperrors.NewBadRequestError("activelyHiring must be true or false")
		}
		query.ActivelyHiring = &hiring
	}

	if state := strings.TrimSpace(ctx.Query("state")); state != "" {
		query.State = strings.ToUpper(state)
	}

	if status := strings.TrimSpace(ctx.Query("activityStatus")); status != "" {
		switch models.ActivityStatus(strings.ToLower(status)) {
		case models.ActivityStatusHot, models.ActivityStatusWarm, models.ActivityStatusCold:
			query.ActivityStatus = models.ActivityStatus(strings.ToLower(status))
		default:
			return nil, apperrors.NewBadRequestError("activityStatus must be hot, warm or cold")
		}
	}

	if activeStr := ctx.Query("showActiveOnly"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			return nil, apperrors.NewBadRequestError("showActiveOnly must be true or false")
		}
		query.ShowActiveOnly = active
	}

	return query, nil
}

// writeDirectoryError writes a listing failure in the directory's flat
// error shape. Store failures echo the driver's message and code.
func (c *AlumniController) writeDirectoryError(ctx *gin.Context, err error) {
	logger.Error().Err(err).Msg("Alumni directory listing failed")

	resp := dto.DirectoryErrorResponse{
		Error:   "Failed to fetch alumni",
		Details: err.Error(),
	}

	var storeErr *apperrors.StoreError
	if errors.As(err, &storeErr) {
		resp.Details = storeErr.Message
		resp.Code = storeErr.Code
	}

	ctx.JSON(http.StatusInternalServerError, resp)
}

// GetAlumnus retrieves one alumni record
// @Summary Get alumnus by ID
// @Description Retrieves a single alumni record with viewer-specific redaction
// @Tags alumni
// @Produce json
// @Param id path int true "Alumni ID"
// @Success 200 {object} dto.APIResponse{data=dto.AlumniProjection} "Alumni record"
// @Failure 404 {object} dto.ErrorResponse "Alumnus not found"
// @Router /alumni/{id} [get]
func (c *AlumniController) GetAlumnus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	viewer := middleware.ViewerFromContext(ctx)
	record, err := c.alumniService.GetAlumnus(ctx, id, viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record))
}

// CreateAlumnus creates a directory record
// @Summary Create an alumni record
// @Description Creates a new alumni directory record (admin only)
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Alumni true "Alumni record"
// @Success 201 {object} dto.APIResponse{data=models.Alumni} "Alumni record created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /alumni [post]
func (c *AlumniController) CreateAlumnus(ctx *gin.Context) {
	var record models.Alumni
	if err := ctx.ShouldBindJSON(&record); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid alumni data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.alumniService.CreateAlumnus(ctx, &record)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created))
}

// UpdateAlumnus updates a directory record
// @Summary Update an alumni record
// @Description Updates an existing alumni directory record (admin only)
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Alumni ID"
// @Param request body models.Alumni true "Updated alumni record"
// @Success 200 {object} dto.APIResponse{data=models.Alumni} "Alumni record updated"
// @Failure 404 {object} dto.ErrorResponse "Alumnus not found"
// @Router /alumni/{id} [put]
func (c *AlumniController) UpdateAlumnus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var record models.Alumni
	if err := ctx.ShouldBindJSON(&record); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid alumni data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	record.ID = id

	updated, err := c.alumniService.UpdateAlumnus(ctx, &record)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// DeleteAlumnus removes a directory record
// @Summary Delete an alumni record
// @Description Deletes an alumni directory record (admin only)
// @Tags alumni
// @Security BearerAuth
// @Param id path int true "Alumni ID"
// @Success 204 "Alumni record deleted"
// @Failure 404 {object} dto.ErrorResponse "Alumnus not found"
// @Router /alumni/{id} [delete]
func (c *AlumniController) DeleteAlumnus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.alumniService.DeleteAlumnus(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseIDParam parses a numeric path parameter, writing the standard
// validation error on failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	idStr := ctx.Param(name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
