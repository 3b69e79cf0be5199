package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/peakform/storefront/internal/notify"
	"github.com/peakform/storefront/internal/utils"
)

// NoticeHandler drains pending user notices for the view layer.
type NoticeHandler struct {
	center *notify.Center
}

// NewNoticeHandler constructs a NoticeHandler.
func NewNoticeHandler(center *notify.Center) *NoticeHandler {
	return &NoticeHandler{center: center}
}

// Drain returns and clears all pending notices.
func (h *NoticeHandler) Drain(c *gin.Context) {
	utils.Success(c, 200, "Notices", gin.H{"notices": h.center.Drain()})
}
