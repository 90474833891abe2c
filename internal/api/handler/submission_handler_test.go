package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stylematch/waitlist/internal/core/domain"
	"github.com/stylematch/waitlist/internal/core/ports"
)

type stubSubmissionService struct {
	submitFn func(ctx context.Context, input map[string]any) (*ports.SubmitResult, error)
	listFn   func(ctx context.Context, kind domain.Kind) ([]domain.Submission, error)
	deleteFn func(ctx context.Context, kind domain.Kind, id string) error
}

func (s *stubSubmissionService) Submit(ctx context.Context, input map[string]any) (*ports.SubmitResult, error) {
	return s.submitFn(ctx, input)
}

func (s *stubSubmissionService) List(ctx context.Context, kind domain.Kind) ([]domain.Submission, error) {
	return s.listFn(ctx, kind)
}

func (s *stubSubmissionService) Delete(ctx context.Context, kind domain.Kind, id string) error {
	return s.deleteFn(ctx, kind, id)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSubmissionHandler_Submit_Created(t *testing.T) {
	stub := &stubSubmissionService{
		submitFn: func(_ context.Context, input map[string]any) (*ports.SubmitResult, error) {
			if input["type"] != "customer" || input["name"] != "Jo Lin" {
				t.Fatalf("unexpected input: %v", input)
			}
			return &ports.SubmitResult{ID: "id-1", Kind: domain.KindCustomer}, nil
		},
	}
	h := NewSubmissionHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/submit",
		`{"type":"customer","name":"Jo Lin","email":"JO@Example.com","style":"minimalist","budget":"100-250"}`)

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["id"] != "id-1" || resp["message"] == "" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestSubmissionHandler_Submit_InvalidJSON(t *testing.T) {
	h := NewSubmissionHandler(&stubSubmissionService{
		submitFn: func(context.Context, map[string]any) (*ports.SubmitResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	for _, body := range []string{`{"type":`, `["customer"]`} {
		c, _ := newJSONContext(http.MethodPost, "/api/submit", body)
		err := h.Submit(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400 HTTPError, got %v", body, err)
		}
	}
}

func TestSubmissionHandler_Submit_PassesServiceErrors(t *testing.T) {
	want := &domain.ValidationError{Details: []string{"email is required"}}
	h := NewSubmissionHandler(&stubSubmissionService{
		submitFn: func(context.Context, map[string]any) (*ports.SubmitResult, error) {
			return nil, want
		},
	})

	c, rec := newJSONContext(http.MethodPost, "/api/submit", `{"type":"customer"}`)
	err := h.Submit(c)

	if !errors.Is(err, want) {
		t.Fatalf("expected validation error to reach the error handler, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler must not write a body on error")
	}
}

func TestSubmissionHandler_List(t *testing.T) {
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	h := NewSubmissionHandler(&stubSubmissionService{
		listFn: func(_ context.Context, kind domain.Kind) ([]domain.Submission, error) {
			if kind != domain.KindMerchant {
				t.Fatalf("unexpected kind: %s", kind)
			}
			return []domain.Submission{&domain.Merchant{
				ID: "m1", BusinessName: "Nord", ContactName: "Kim", Email: "kim@nord.se",
				Category: domain.CategoryFootwear, SubmittedAt: at,
			}}, nil
		},
	})

	c, rec := newJSONContext(http.MethodGet, "/api/merchants", "")
	if err := h.ListMerchants(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []map[string]any `json:"data"`
		Count int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || len(resp.Data) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Data[0]["businessName"] != "Nord" || resp.Data[0]["submittedAt"] != "2026-10-18T12:00:00Z" {
		t.Fatalf("unexpected record: %v", resp.Data[0])
	}
}

func TestSubmissionHandler_List_EmptyIsArray(t *testing.T) {
	h := NewSubmissionHandler(&stubSubmissionService{
		listFn: func(context.Context, domain.Kind) ([]domain.Submission, error) { return nil, nil },
	})

	c, rec := newJSONContext(http.MethodGet, "/api/customers", "")
	if err := h.ListCustomers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"data":[],"count":0}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestSubmissionHandler_Delete(t *testing.T) {
	var gotKind domain.Kind
	var gotID string
	h := NewSubmissionHandler(&stubSubmissionService{
		deleteFn: func(_ context.Context, kind domain.Kind, id string) error {
			gotKind, gotID = kind, id
			return nil
		},
	})

	c, rec := newJSONContext(http.MethodDelete, "/api/customers/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.DeleteCustomer(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotKind != domain.KindCustomer || gotID != "abc" {
		t.Fatalf("unexpected delete args: %s %s", gotKind, gotID)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSubmissionHandler_Delete_NotFound(t *testing.T) {
	h := NewSubmissionHandler(&stubSubmissionService{
		deleteFn: func(context.Context, domain.Kind, string) error { return domain.ErrSubmissionNotFound },
	})

	c, _ := newJSONContext(http.MethodDelete, "/api/merchants/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := h.DeleteMerchant(c); !errors.Is(err, domain.ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestRejectReason(t *testing.T) {
	cases := map[string]error{
		"validation": &domain.ValidationError{},
		"duplicate":  domain.ErrDuplicateEmail,
		"storage":    errors.New("disk"),
	}
	for want, err := range cases {
		if got := rejectReason(err); got != want {
			t.Errorf("rejectReason(%v) = %s, want %s", err, got, want)
		}
	}
}
