package api

import (
	"net/http"

	"court-booking/internal/domain/slot"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Court availability
// @Description Every bookable unit of every active court on a date, marked free or with the holder kind.
// @Tags availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) ForDate(c *gin.Context) {
	date, err := slot.ParseDate(c.Query("date"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.ForDate(c.Request.Context(), date)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
