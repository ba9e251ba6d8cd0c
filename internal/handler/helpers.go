package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/middleware"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/response"
	appValidator "github.com/noah-isme/timetable-api/pkg/validator"
)

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, param string) (int64, bool) {
	raw := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		detail := param + " must be a positive integer"
		response.Error(c, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid "+param), map[string]string{param: detail}))
		return 0, false
	}
	return id, true
}

// parseDay reads an optional day of week (1..7) from raw. Empty input
// yields nil.
func parseDay(c *gin.Context, raw, field string) (*int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	day, err := strconv.Atoi(raw)
	if err != nil || !models.ValidDayOfWeek(day) {
		detail := field + " must be between 1 and 7"
		response.Error(c, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, detail), map[string]string{field: detail}))
		return nil, false
	}
	return &day, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		invalid := appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
		response.Error(c, appErrors.WithDetails(invalid, bindErrorDetails(err)))
		return false
	}
	return true
}

// bindErrorDetails maps a decode failure onto the JSON field it concerns.
func bindErrorDetails(err error) map[string]string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return map[string]string{typeErr.Field: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)}
	case errors.As(err, &syntaxErr):
		return map[string]string{"body": fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return map[string]string{"body": "malformed JSON: unexpected end of input"}
	case errors.Is(err, io.EOF):
		return map[string]string{"body": "request body is required"}
	default:
		return appValidator.TranslateErrors(err)
	}
}

func respondCached(c *gin.Context, data interface{}, cacheHit bool) {
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, data, middleware.ExtractMeta(c))
}
