package api

import (
	"court-booking/internal/domain/user"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func optionalIdentity(c *gin.Context) *user.Identity {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return nil
	}
	return &identity
}

// validationDetail lists the failing fields with the tag that rejected them.
func validationDetail(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errs.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Namespace()] = fe.Tag()
	}
	return out
}
