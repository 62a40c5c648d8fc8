package handler

import (
	"net/http"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/middleware"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/service"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ClientHandler serves client CRUD endpoints
type ClientHandler struct {
	clients *service.ClientService
}

// NewClientHandler creates a client handler
func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// Create handles POST /api/clients
func (h *ClientHandler) Create(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	var input service.CreateClientInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse client request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	client, err := h.clients.Create(c.Request().Context(), p, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, client)
}

// List handles GET /api/clients
func (h *ClientHandler) List(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	clients, err := h.clients.List(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": clients})
}

// Get handles GET /api/clients/:id
func (h *ClientHandler) Get(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	client, err := h.clients.Get(c.Request().Context(), p, id, boolQuery(c, "include_inactive"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Update handles PATCH /api/clients/:id
func (h *ClientHandler) Update(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input service.UpdateClientInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse client update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	client, err := h.clients.Update(c.Request().Context(), p, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /api/clients/:id
func (h *ClientHandler) Delete(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.clients.Delete(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Client deleted successfully"})
}
