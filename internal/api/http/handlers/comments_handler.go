package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/open-helpdesk/helpdesk-service/internal/api/dto"
	"github.com/open-helpdesk/helpdesk-service/internal/domain"
	"github.com/open-helpdesk/helpdesk-service/internal/service"
	"github.com/open-helpdesk/helpdesk-service/pkg/util/errorutil"
)

// CommentsHandler manages ticket thread endpoints.
type CommentsHandler struct {
	comments *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(comments *service.CommentService) *CommentsHandler {
	return &CommentsHandler{comments: comments}
}

// Create POST /tickets/:id/comments.
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	comment, err := h.comments.Add(c.Context(), caller, c.Params("id"), req.Body, req.Attachment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// List GET /tickets/:id/comments.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	comments, err := h.comments.List(c.Context(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		TicketID:   comment.TicketID,
		Author:     accountRefResponse(comment.Author),
		Body:       comment.Body,
		Attachment: comment.Attachment,
		CreatedAt:  comment.CreatedAt,
	}
}
