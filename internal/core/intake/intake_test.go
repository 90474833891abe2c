package intake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylematch/waitlist/internal/core/domain"
)

func TestValidate_CustomerNormalizesEmail(t *testing.T) {
	sub, errs := New().Validate(map[string]any{
		"type":   "customer",
		"name":   "Jo Lin",
		"email":  "JO@Example.com",
		"style":  "minimalist",
		"budget": "100-250",
	})
	require.Empty(t, errs)

	c, ok := sub.(*domain.Customer)
	require.True(t, ok, "expected *domain.Customer, got %T", sub)
	assert.Equal(t, "Jo Lin", c.Name)
	assert.Equal(t, "jo@example.com", c.Email)
	assert.Equal(t, domain.StyleMinimalist, c.Style)
	assert.Equal(t, domain.Budget100To250, c.Budget)
	assert.Empty(t, c.ID, "id is assigned by the service")
	assert.True(t, c.SubmittedAt.IsZero())
}

func TestValidate_MerchantValid(t *testing.T) {
	sub, errs := New().Validate(map[string]any{
		"type":         "merchant",
		"businessName": "  Atelier <b>Nord</b> ",
		"contactName":  "Sam Ortiz",
		"email":        " Sales@Atelier.io ",
		"category":     "accessories",
	})
	require.Empty(t, errs)

	m, ok := sub.(*domain.Merchant)
	require.True(t, ok)
	assert.Equal(t, "Atelier bNord/b", m.BusinessName)
	assert.Equal(t, "sales@atelier.io", m.Email)
	assert.Equal(t, domain.CategoryAccessories, m.Category)
}

func TestValidate_InvalidStyleNamesField(t *testing.T) {
	for _, style := range []string{"goth", "MINIMALIST", "", "minimalist "} {
		payload := map[string]any{
			"type": "customer", "name": "A", "email": "a@b.co", "budget": "1000+",
		}
		if style != "" {
			payload["style"] = style
		}
		_, errs := New().Validate(payload)
		if strings.TrimSpace(style) == "minimalist" {
			assert.Empty(t, errs, "surrounding whitespace is trimmed")
			continue
		}
		require.Len(t, errs, 1, "style %q", style)
		assert.Contains(t, errs[0], "style")
	}
}

func TestValidate_ErrorsInFieldOrder(t *testing.T) {
	_, errs := New().Validate(map[string]any{
		"type":   "customer",
		"name":   "<>",
		"email":  "not an email",
		"budget": "cheap",
	})
	assert.Equal(t, []string{
		"name is required",
		"email must be a valid email address",
		"style is required",
		"budget must be one of: under-100, 100-250, 250-500, 500-1000, 1000+",
	}, errs)
}

func TestValidate_EmailShapes(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":          true,
		"first.last@x.io": true,
		"@b.co":           false,
		"a@":              false,
		"a@bco":           false,
		"a b@c.io":        false,
		"a@b@c.io":        false,
	}
	for email, valid := range cases {
		_, errs := New().Validate(map[string]any{
			"type": "customer", "name": "A", "email": email, "style": "casual", "budget": "1000+",
		})
		if valid {
			assert.Empty(t, errs, email)
		} else {
			assert.Equal(t, []string{"email must be a valid email address"}, errs, email)
		}
	}
}

func TestValidate_EmailLengthCheckedBeforeTruncation(t *testing.T) {
	fits := strings.Repeat("a", MaxFieldLength-len("@b.co")) + "@b.co"
	sub, errs := New().Validate(map[string]any{
		"type": "customer", "name": "A", "email": fits, "style": "casual", "budget": "1000+",
	})
	require.Empty(t, errs)
	assert.Equal(t, fits, sub.ContactEmail())

	tooLong := "a" + fits
	_, errs = New().Validate(map[string]any{
		"type": "customer", "name": "A", "email": tooLong, "style": "casual", "budget": "1000+",
	})
	assert.Equal(t, []string{"email must be a valid email address"}, errs)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jo@example.com", NormalizeEmail("  <Jo@Example.COM> "))
	long := strings.Repeat("a", MaxFieldLength) + "@b.co"
	assert.Equal(t, long, NormalizeEmail(long))
}

func TestValidate_UnknownType(t *testing.T) {
	for _, typ := range []any{nil, "", "admin", 42} {
		_, errs := New().Validate(map[string]any{"type": typ})
		assert.Equal(t, []string{"type must be one of: customer, merchant"}, errs)
	}
}

func TestValidate_NonStringTreatedAsMissing(t *testing.T) {
	_, errs := New().Validate(map[string]any{
		"type": "merchant", "businessName": 12, "contactName": "Kim", "email": "k@m.co", "category": "bags",
	})
	assert.Equal(t, []string{"businessName is required"}, errs)
}

func TestValidate_UnknownFieldsIgnored(t *testing.T) {
	sub, errs := New().Validate(map[string]any{
		"type": "customer", "name": "A", "email": "a@b.co", "style": "vintage", "budget": "under-100",
		"isAdmin": true, "notes": "drop me",
	})
	require.Empty(t, errs)
	assert.Equal(t, &domain.Customer{Name: "A", Email: "a@b.co", Style: domain.StyleVintage, Budget: domain.BudgetUnder100}, sub)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", Sanitize("  <script>alert(1)</script> "))
	long := strings.Repeat("é", MaxFieldLength+50)
	assert.Equal(t, MaxFieldLength, len([]rune(Sanitize(long))))
}
