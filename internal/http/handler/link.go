package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docshare/internal/service"
)

var validate = validator.New()

// createLinkRequest is the owner-supplied gating configuration for a new link.
type createLinkRequest struct {
	Alias          string     `json:"alias" validate:"omitempty,max=255"`
	IsPublic       bool       `json:"isPublic"`
	Password       string     `json:"password" validate:"omitempty,min=5"`
	ExpirationTime *time.Time `json:"expirationTime"`
	VisitorFields  []string   `json:"visitorFields" validate:"omitempty,dive,oneof=name email"`
}

// CreateLink mints a new share link for a document the caller owns.
func CreateLink(linkSvc service.LinkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("documentId")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req createLinkRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}

		link, err := linkSvc.Create(c.UserContext(), userIDFromCtx(c), documentID, service.CreateLinkOptions{
			Alias:          req.Alias,
			IsPublic:       req.IsPublic,
			Password:       req.Password,
			ExpirationTime: req.ExpirationTime,
			VisitorFields:  req.VisitorFields,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(link)
	}
}

// ListLinks returns all links of a document the caller owns.
func ListLinks(linkSvc service.LinkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("documentId")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		links, err := linkSvc.ListForDocument(c.UserContext(), userIDFromCtx(c), documentID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"links": links})
	}
}

// DeleteLink removes a link the caller created.
func DeleteLink(linkSvc service.LinkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		linkID := c.Params("linkId")
		if _, err := uuid.Parse(linkID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := linkSvc.Delete(c.UserContext(), userIDFromCtx(c), linkID); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "link deleted"})
	}
}
