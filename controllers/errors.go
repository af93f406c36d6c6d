package controllers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"abeg-fix/models"

	"github.com/gin-gonic/gin"
)

var errorStatus = []struct {
	kind   error
	status int
}{
	{models.ErrValidation, http.StatusBadRequest},
	{models.ErrDuplicate, http.StatusBadRequest},
	{models.ErrExpired, http.StatusBadRequest},
	{models.ErrInvalidCredentials, http.StatusBadRequest},
	{models.ErrUnauthorized, http.StatusUnauthorized},
	{models.ErrEmailNotVerified, http.StatusForbidden},
	{models.ErrForbidden, http.StatusForbidden},
	{models.ErrNotFound, http.StatusNotFound},
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) (int, error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.kind) {
			return e.status, e.kind
		}
	}
	return http.StatusInternalServerError, nil
}

// publicMessage turns a wrapped kind error into client text. Short details
// such as "review" are expanded around the kind ("Review not found").
func publicMessage(err, kind error) string {
	msg := err.Error()
	if detail, ok := strings.CutPrefix(msg, kind.Error()+": "); ok {
		switch {
		case kind == models.ErrExpired:
			msg = kind.Error() + " " + detail
		case !strings.Contains(detail, " "):
			msg = detail + " " + kind.Error()
		default:
			msg = detail
		}
	}
	r := []rune(msg)
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}

func respondError(c *gin.Context, err error) {
	status, kind := statusFor(err)
	if kind == nil {
		_ = c.Error(err)
		c.JSON(status, models.ErrorResponse{
			Success: false,
			Message: "Server error",
		})
		return
	}
	c.JSON(status, models.ErrorResponse{
		Success:    false,
		Message:    publicMessage(err, kind),
		Unverified: errors.Is(err, models.ErrEmailNotVerified),
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request",
		Error:   err.Error(),
	})
}

// degraded separates a recompute failure, which still counts as success, from
// a real error. It returns the warning text for the former.
func degraded(c *gin.Context, err error) (string, bool) {
	var aggErr *models.AggregateError
	if errors.As(err, &aggErr) {
		_ = c.Error(err)
		return "Rating could not be updated and will be corrected on the next review", true
	}
	return "", false
}
