package handlers

import (
	"net/http"
	"strconv"

	"dojohub/internal/common"
	"dojohub/internal/repositories"

	"github.com/labstack/echo/v4"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

type AuditLogsHandlers struct {
	auditRepo repositories.AuditLogsRepository
	dojoRepo  repositories.DojoRepository
}

func NewAuditLogsHandlers(auditRepo repositories.AuditLogsRepository, dojoRepo repositories.DojoRepository) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditRepo: auditRepo, dojoRepo: dojoRepo}
}

// ListDojoAuditLogs returns the billing transition history for a dojo
// the caller owns, newest first.
func (h *AuditLogsHandlers) ListDojoAuditLogs(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	dojoID, err := common.ValidateUUID(c.Param("id"), "dojo id")
	if err != nil {
		return common.SendError(c, err)
	}

	dojo, err := h.dojoRepo.GetByID(c.Request().Context(), dojoID)
	if err != nil {
		return common.SendError(c, err)
	}
	if dojo.OwnerID != userID {
		return common.SendForbiddenError(c, "requesting user does not own dojo")
	}

	limit := defaultAuditPageSize
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= maxAuditPageSize {
			limit = parsed
		}
	}
	offset := 0
	if raw := c.QueryParam("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	logs, err := h.auditRepo.ListByDojoID(c.Request().Context(), dojoID, limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
