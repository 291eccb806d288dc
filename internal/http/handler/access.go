package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docshare/internal/model"
	"docshare/internal/service"
)

// accessRequest is what a visitor submits to pass a link's gates.
type accessRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// logEventRequest records a usage fact against a link.
type logEventRequest struct {
	EventType string          `json:"eventType"`
	VisitorID *int64          `json:"visitorId"`
	Meta      json.RawMessage `json:"meta"`
}

// LinkMetadata returns the gating flags a client needs before prompting the
// visitor. Expired links report 410 here too, not 200.
func LinkMetadata(accessSvc service.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		linkID := c.Params("linkId")
		if _, err := uuid.Parse(linkID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		meta, err := accessSvc.Metadata(c.UserContext(), linkID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(meta)
	}
}

// AccessLink runs the full gate pipeline and, on success, returns a signed
// retrieval reference for the document. The pipeline always runs server-side,
// even for links a client believes are public.
func AccessLink(accessSvc service.AccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		linkID := c.Params("linkId")
		if _, err := uuid.Parse(linkID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req accessRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
			}
		}

		grant, err := accessSvc.Access(c.UserContext(), linkID, service.AccessCredentials{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(grant)
	}
}

// LogLinkEvent appends a VIEW or DOWNLOAD fact for a link. Viewing and being
// granted access are distinct events; the client reports the former when the
// file actually opens.
func LogLinkEvent(analyticsSvc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		linkID := c.Params("linkId")
		if _, err := uuid.Parse(linkID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req logEventRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		event, err := analyticsSvc.LogLinkEvent(c.UserContext(), linkID, model.AnalyticsEventType(req.EventType), req.VisitorID, req.Meta)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(event)
	}
}
