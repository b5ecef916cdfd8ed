package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
)

// DataResponse is the success envelope: {"data": ..., "meta": {...}}.
type DataResponse struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries list metadata.
type Meta struct {
	Total int `json:"total"`
}

// RespondWithError writes err as the JSON error envelope and aborts the
// Gin chain. Errors outside the AppError family become a 500 whose body
// hides the cause; server-side failures are logged with the request id.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.Wrap(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.GetGlobalLogger().WithContext(c.Request.Context()).
			Error("Request failed", logger.Fields(
				"code", string(appErr.Code),
				logger.FieldError, err,
				"path", c.FullPath(),
			))
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends 200 with data in the envelope.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondList sends 200 with items and their count. A nil slice is sent
// as [] so clients never see "data": null.
func RespondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = make([]T, 0)
	}
	c.JSON(http.StatusOK, DataResponse{Data: items, Meta: &Meta{Total: len(items)}})
}
