package httperr

import (
	"net/http"

	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	MsgSlotUnavailable = "this slot is no longer available, choose another"
	MsgInternal        = "Internal server error"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = codeFor(status)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort picks status and message from the error class marked by the usecase layer.
func Abort(c *gin.Context, err error) {
	status, msg, detail := Classify(err)
	AbortWithError(c, status, err, msg, detail)
}

func Classify(err error) (int, string, any) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, err.Error(), nil
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "Resource not found", nil
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "Not allowed to modify this reservation", nil
	case errs.Is(err, commands.ErrAlreadyCancelled):
		return http.StatusConflict, "Reservation is already cancelled", nil
	case errs.Is(err, errs.ErrConflict):
		var conflictErr *commands.ConflictError
		if errs.As(err, &conflictErr) {
			return http.StatusConflict, MsgSlotUnavailable, gin.H{
				"reason":      conflictErr.Error(),
				"resource_id": conflictErr.ResourceID,
				"start_time":  conflictErr.Start.String(),
			}
		}
		return http.StatusConflict, MsgSlotUnavailable, nil
	case errs.Is(err, errs.ErrUpstream):
		return http.StatusBadGateway, "Payment provider is unavailable, try again later", nil
	default:
		return http.StatusInternalServerError, MsgInternal, nil
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusBadGateway:
		return "upstream"
	default:
		return "internal"
	}
}
