package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/greeklink/greeklink/internal/app/models/dto"
)

var validate = validator.New()

// BindAndValidate binds the JSON body into obj and runs struct
// validation, writing the standard error envelope on failure.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.HandleValidationError(err)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	if err := validate.Struct(obj); err != nil {
		errorDetail := dto.HandleValidationError(err)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	return true
}
