package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/api/dto"
	"github.com/spec-kit/roster-service/internal/service"
)

// BoardHandler serves the roster board projection.
type BoardHandler struct {
	service *service.AssignmentService
}

// NewBoardHandler constructs handler.
func NewBoardHandler(assignmentService *service.AssignmentService) *BoardHandler {
	return &BoardHandler{service: assignmentService}
}

// GetBoard GET /api/board.
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	board, err := h.service.Board(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "board fetched", dto.NewBoardResponse(board))
}
