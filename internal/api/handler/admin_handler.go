package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stylematch/waitlist/internal/core/ports"
)

type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Login exchanges the admin secret for a short-lived bearer token.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Admin secret"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.adminService.Login(c.Request().Context(), req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success:   true,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}
