package http

import (
	"github.com/gin-gonic/gin"

	pkgResponse "newsletter-automation/pkg/response"
)

// ProcessInbox triggers a full inbox run and returns the run statistics.
// @Summary Process unread newsletters
// @Description Fetch unread newsletters, extract events and create them in the calendar
// @Tags Newsletter
// @Accept json
// @Produce json
// @Success 200 {object} model.ProcessStats "Run statistics"
// @Router /api/v1/newsletter/process [post]
func (h *handler) ProcessInbox(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.uc.ProcessInbox(ctx)
	if err != nil {
		h.l.Errorf(ctx, "Inbox run failed: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, stats)
}
