package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stylematch/waitlist/internal/api/metrics"
	"github.com/stylematch/waitlist/internal/core/domain"
	"github.com/stylematch/waitlist/internal/core/ports"
)

// SubmissionHandler handles waitlist signups and their admin views.
type SubmissionHandler struct {
	service ports.SubmissionService
	binder  echo.DefaultBinder
}

func NewSubmissionHandler(service ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit handles POST /api/submit.
//
// @Summary      Join the waitlist
// @Description  Stores a customer or merchant signup selected by the type field.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        body  body      submitRequest  true  "Customer or merchant signup"
// @Success      201   {object}  submitResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      409   {object}  duplicateResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/submit [post]
func (h *SubmissionHandler) Submit(c echo.Context) error {
	var payload map[string]any
	if err := h.binder.BindBody(c, &payload); err != nil {
		metrics.SubmissionsRejectedTotal.WithLabelValues("unknown", "validation").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload").SetInternal(err)
	}

	res, err := h.service.Submit(c.Request().Context(), payload)
	if err != nil {
		metrics.SubmissionsRejectedTotal.WithLabelValues(kindLabel(payload), rejectReason(err)).Inc()
		return err
	}

	metrics.SubmissionsCreatedTotal.WithLabelValues(string(res.Kind)).Inc()
	return c.JSON(http.StatusCreated, toSubmitResponse(res))
}

// ListCustomers handles GET /api/customers.
//
// @Summary      List customer signups
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse
// @Failure      401  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/customers [get]
func (h *SubmissionHandler) ListCustomers(c echo.Context) error {
	return h.list(c, domain.KindCustomer)
}

// ListMerchants handles GET /api/merchants.
//
// @Summary      List merchant applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse
// @Failure      401  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/merchants [get]
func (h *SubmissionHandler) ListMerchants(c echo.Context) error {
	return h.list(c, domain.KindMerchant)
}

// DeleteCustomer handles DELETE /api/customers/:id.
//
// @Summary      Delete a customer signup
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission id"
// @Success      200  {object}  deleteResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/customers/{id} [delete]
func (h *SubmissionHandler) DeleteCustomer(c echo.Context) error {
	return h.delete(c, domain.KindCustomer)
}

// DeleteMerchant handles DELETE /api/merchants/:id.
//
// @Summary      Delete a merchant application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission id"
// @Success      200  {object}  deleteResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/merchants/{id} [delete]
func (h *SubmissionHandler) DeleteMerchant(c echo.Context) error {
	return h.delete(c, domain.KindMerchant)
}

func (h *SubmissionHandler) list(c echo.Context, kind domain.Kind) error {
	subs, err := h.service.List(c.Request().Context(), kind)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(subs))
}

func (h *SubmissionHandler) delete(c echo.Context, kind domain.Kind) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	if err := h.service.Delete(c.Request().Context(), kind, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDeleteResponse(kind))
}

func kindLabel(payload map[string]any) string {
	s, _ := payload["type"].(string)
	if kind, ok := domain.ParseKind(s); ok {
		return string(kind)
	}
	return "unknown"
}

func rejectReason(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate"
	}
	return "storage"
}
