package handler

import (
	"github.com/arturoeanton/go-bedrock-rag/internal/port"
	"github.com/gofiber/fiber/v3"
)

// DocumentsHandler exposes read-only visibility into the ingestion bucket.
type DocumentsHandler struct {
	objects port.ObjectStore
}

// NewDocumentsHandler creates a new documents handler.
func NewDocumentsHandler(objects port.ObjectStore) *DocumentsHandler {
	return &DocumentsHandler{objects: objects}
}

// Register sets up document routes.
func (h *DocumentsHandler) Register(router fiber.Router) {
	router.Get("/documents", h.List)
}

// List returns the source document keys currently in the bucket.
func (h *DocumentsHandler) List(c fiber.Ctx) error {
	keys, err := h.objects.ListDocuments(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}
	if keys == nil {
		keys = []string{}
	}

	return c.JSON(fiber.Map{
		"documents": keys,
		"count":     len(keys),
	})
}
