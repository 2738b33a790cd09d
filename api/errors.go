package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Domenick1991/sporthub/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// respondError maps a ledger error onto a status code. notFound and failure
// are the client-facing messages for 404 and 500 responses.
func respondError(c *gin.Context, err error, notFound, failure string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: notFound})
	case errors.Is(err, domain.ErrSlotTaken):
		c.JSON(http.StatusConflict, errorResponse{Error: "Time slot already booked", Details: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: failure, Details: err.Error()})
	}
}

func badRequest(c *gin.Context, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	if msg == "" {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
