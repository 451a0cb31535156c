package handlers

import (
	"net/http"

	"dojohub/internal/common"
	"dojohub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BillingHandlers struct {
	billingSvc services.BillingService
}

func NewBillingHandlers(billingSvc services.BillingService) *BillingHandlers {
	return &BillingHandlers{billingSvc: billingSvc}
}

type setupBillingRequest struct {
	DojoID string `json:"dojo_id"`
}

type checkoutRequest struct {
	ChildIDs []string `json:"child_ids"`
}

// SetupBilling starts payment method collection for the caller's dojo.
func (h *BillingHandlers) SetupBilling(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req setupBillingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request body")
	}
	dojoID, err := common.ValidateUUID(req.DojoID, "dojo_id")
	if err != nil {
		return common.SendError(c, err)
	}

	result, err := h.billingSvc.SetupDojoAdminBilling(c.Request().Context(), dojoID, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ConfirmBilling exchanges the caller's succeeded setup intent for the
// platform subscription. Safe to retry.
func (h *BillingHandlers) ConfirmBilling(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.billingSvc.ConfirmDojoAdminBilling(c.Request().Context(), userID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "confirmed"})
}

// CreateClassCheckout starts a bulk checkout of one or more children
// against a class.
func (h *BillingHandlers) CreateClassCheckout(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	classID, err := common.ValidateUUID(c.Param("id"), "class id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request body")
	}
	if len(req.ChildIDs) == 0 {
		return common.SendValidationError(c, "child_ids", "at least one child is required")
	}

	childIDs := make([]uuid.UUID, 0, len(req.ChildIDs))
	for _, raw := range req.ChildIDs {
		id, err := common.ValidateUUID(raw, "child_ids")
		if err != nil {
			return common.SendError(c, err)
		}
		childIDs = append(childIDs, id)
	}

	result, err := h.billingSvc.CreateClassCheckout(c.Request().Context(), userID, classID, childIDs)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// EnsureClassPrice creates (once) the gateway price for a class owned by
// the caller.
func (h *BillingHandlers) EnsureClassPrice(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	classID, err := common.ValidateUUID(c.Param("id"), "class id")
	if err != nil {
		return common.SendError(c, err)
	}

	priceID, err := h.billingSvc.EnsureClassPrice(c.Request().Context(), userID, classID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"price_id": priceID})
}
