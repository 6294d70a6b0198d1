package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the branch audit trail, newest first, with action and
// entity filters and offset pagination.
func (h *AuditLogsHandler) List(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	query := h.db.Model(&models.AuditLog{}).Where("branch_id = ?", branchID)

	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_count_logs", "Failed to load audit logs.")
		return
	}

	var logs []models.AuditLog
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_logs", "Failed to load audit logs.")
		return
	}

	httpresp.List(c, logs, total)
}
