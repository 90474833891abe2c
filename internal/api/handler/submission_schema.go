package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error" example:"submission not found"`
}

type validationErrorResponse struct {
	Error   string   `json:"error"   example:"validation failed"`
	Details []string `json:"details" example:"email must be a valid email address"`
}

type duplicateResponse struct {
	Error   string `json:"error"   example:"duplicate submission"`
	Message string `json:"message" example:"this email is already registered"`
}

// submitRequest documents both payload shapes accepted by POST /api/submit.
// The handler binds into a map so unknown fields are dropped by the validator.
type submitRequest struct {
	Type         string `json:"type"                   example:"customer" enums:"customer,merchant"`
	Email        string `json:"email"                  example:"jo@example.com"`
	Name         string `json:"name,omitempty"         example:"Jo Lin"`
	Style        string `json:"style,omitempty"        example:"minimalist" enums:"minimalist,vintage,streetwear,formal,casual,other"`
	Budget       string `json:"budget,omitempty"       example:"100-250" enums:"under-100,100-250,250-500,500-1000,1000+"`
	BusinessName string `json:"businessName,omitempty" example:"Atelier Nord"`
	ContactName  string `json:"contactName,omitempty"  example:"Sam Ortiz"`
	Category     string `json:"category,omitempty"     example:"accessories" enums:"clothing,footwear,accessories,jewelry,bags,other"`
}

type submitResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"thanks for joining the waitlist"`
	ID      string `json:"id"      example:"6f1c2f0e-8d4b-4c3e-9a57-0b6d1e2f3a4b"`
}

type listResponse struct {
	Data  []any `json:"data"`
	Count int   `json:"count" example:"1"`
}

type deleteResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"customer deleted"`
}

type loginRequest struct {
	Password string `json:"password" example:"s3cret"`
}

type loginResponse struct {
	Success   bool      `json:"success"   example:"true"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
