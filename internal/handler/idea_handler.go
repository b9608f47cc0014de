package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "ideaboard/internal/errors"
	"ideaboard/internal/model"
	"ideaboard/internal/service"
)

var ideaMessages = map[string]string{
	"required": "Title, summary and description are all required values",
}

// IdeaHandler handles idea endpoints.
type IdeaHandler struct {
	ideaService service.IdeaService
}

// NewIdeaHandler creates a new idea handler.
func NewIdeaHandler(ideaService service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

// IdeaRequest is the body of create and update. Tags may be a comma separated
// string or a list of strings.
type IdeaRequest struct {
	Title       string `json:"title" validate:"required"`
	Summary     string `json:"summary" validate:"required"`
	Description string `json:"description" validate:"required"`
	Tags        any    `json:"tags" swaggertype:"array,string"`
}

func (r *IdeaRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *IdeaRequest) input() service.IdeaInput {
	return service.IdeaInput{
		Title:       r.Title,
		Summary:     r.Summary,
		Description: r.Description,
		Tags:        model.NormalizeTags(r.Tags),
	}
}

// ListIdeas godoc
// @Summary List ideas
// @Description Newest first. _limit caps the number of results.
// @Tags ideas
// @Produce json
// @Param _limit query int false "Maximum number of ideas"
// @Success 200 {array} model.Idea
// @Failure 500 {object} errors.ErrorResponse
// @Router /ideas [get]
func (h *IdeaHandler) ListIdeas(c echo.Context) error {
	ideas, err := h.ideaService.List(c.Request().Context(), parseLimit(c.QueryParam("_limit")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ideas)
}

// GetIdea godoc
// @Summary Get idea by id
// @Tags ideas
// @Produce json
// @Param id path string true "Idea ID"
// @Success 200 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ideas/{id} [get]
func (h *IdeaHandler) GetIdea(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	idea, err := h.ideaService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idea)
}

// CreateIdea godoc
// @Summary Create idea
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IdeaRequest true "Idea"
// @Success 201 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ideas [post]
func (h *IdeaHandler) CreateIdea(c echo.Context, identity model.Identity) error {
	req, err := bindIdea(c)
	if err != nil {
		return err
	}

	idea, err := h.ideaService.Create(c.Request().Context(), identity, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, idea)
}

// UpdateIdea godoc
// @Summary Update idea
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Param request body IdeaRequest true "Idea"
// @Success 200 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ideas/{id} [put]
func (h *IdeaHandler) UpdateIdea(c echo.Context, identity model.Identity) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	req, err := bindIdea(c)
	if err != nil {
		return err
	}

	idea, err := h.ideaService.Update(c.Request().Context(), identity, id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idea)
}

// DeleteIdea godoc
// @Summary Delete idea
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ideas/{id} [delete]
func (h *IdeaHandler) DeleteIdea(c echo.Context, identity model.Identity) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.ideaService.Delete(c.Request().Context(), identity, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Idea deleted successfully"})
}

func bindIdea(c echo.Context) (*IdeaRequest, error) {
	var req IdeaRequest
	if err := c.Bind(&req); err != nil {
		return nil, apperrors.Validation("Invalid request body")
	}
	req.normalize()

	if err := c.Validate(&req); err != nil {
		return nil, apperrors.Validation(validationMessage(err, ideaMessages))
	}
	return &req, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidID
	}
	return id, nil
}

// parseLimit returns 0 (no cap) for a missing, malformed or non-positive limit.
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
