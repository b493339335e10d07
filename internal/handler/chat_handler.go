package handler

import (
	"strings"

	"github.com/arturoeanton/go-bedrock-rag/internal/service"
	"github.com/gofiber/fiber/v3"
)

// ChatHandler handles RAG chat requests.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Register sets up chat routes.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Post("/chat", h.Chat)
}

// Chat answers one question over the stored documents. An empty retrieval is
// a normal 200 with the fallback text; only embed/generate failures are 500s.
func (h *ChatHandler) Chat(c fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if strings.TrimSpace(body.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "message is required"})
	}

	answer, err := h.chat.Answer(c.Context(), body.Message)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"response": answer.Text,
		"sources":  answer.Sources,
	})
}
