package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docshare/internal/model"
	"docshare/internal/service"
)

// DocumentAnalytics returns the derived summary for a document the caller owns.
// The optional period query narrows the totals and time series to a trailing
// window (7d, 30d; default all).
func DocumentAnalytics(analyticsSvc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("documentId")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		period := model.AnalyticsPeriod(c.Query("period", string(model.PeriodAll)))
		switch period {
		case model.Period7d, model.Period30d, model.PeriodAll:
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_PERIOD", "period must be 7d, 30d, or all")
		}

		summary, err := analyticsSvc.DocumentSummary(c.UserContext(), userIDFromCtx(c), documentID, period)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(summary)
	}
}

// LinkAnalytics returns the derived summary for one link of an owned document.
func LinkAnalytics(analyticsSvc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("documentId")
		linkID := c.Params("linkId")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if _, err := uuid.Parse(linkID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		summary, err := analyticsSvc.LinkSummary(c.UserContext(), userIDFromCtx(c), documentID, linkID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(summary)
	}
}
