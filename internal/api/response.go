package api

import (
	"errors"
	"net/http"

	"github.com/BerylCAtieno/content-studio/internal/dispatch"
	"github.com/BerylCAtieno/content-studio/internal/normalize"
	"github.com/gin-gonic/gin"
)

// Response is the envelope every /api endpoint answers with.
type Response struct {
	Success  bool     `json:"success"`
	Data     any      `json:"data,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
	Raw      string   `json:"raw,omitempty"`
}

const invalidActionMessage = "Invalid action"

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Error: msg})
}

// generationFailure maps a dispatcher error to its HTTP status and body.
func generationFailure(err error) (int, Response) {
	resp := Response{Success: false, Error: err.Error()}

	switch dispatch.Classify(err) {
	case dispatch.KindValidation:
		if errors.Is(err, dispatch.ErrInvalidAction) {
			resp.Error = invalidActionMessage
		}
		return http.StatusBadRequest, resp
	case dispatch.KindGeneration:
		return http.StatusBadGateway, resp
	case dispatch.KindFormat:
		var fe *normalize.FormatError
		if errors.As(err, &fe) {
			resp.Raw = fe.Raw
		}
		return http.StatusInternalServerError, resp
	case dispatch.KindSemantic:
		return http.StatusUnprocessableEntity, resp
	default:
		resp.Error = "internal error"
		return http.StatusInternalServerError, resp
	}
}
