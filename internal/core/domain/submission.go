package domain

import (
	"strings"
	"time"
)

// Kind names a collection of submissions.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindMerchant Kind = "merchant"
)

// Kinds lists every accepted submission kind in display order.
var Kinds = []Kind{KindCustomer, KindMerchant}

// ParseKind reports whether s names a known kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindCustomer, KindMerchant:
		return k, true
	}
	return "", false
}

// Collection returns the storage collection name for the kind.
func (k Kind) Collection() string {
	return string(k) + "s"
}

// Style is the fashion style a customer identifies with.
type Style string

const (
	StyleMinimalist Style = "minimalist"
	StyleVintage    Style = "vintage"
	StyleStreetwear Style = "streetwear"
	StyleFormal     Style = "formal"
	StyleCasual     Style = "casual"
	StyleOther      Style = "other"
)

var Styles = []Style{StyleMinimalist, StyleVintage, StyleStreetwear, StyleFormal, StyleCasual, StyleOther}

// Budget is a monthly spend bracket.
type Budget string

const (
	BudgetUnder100  Budget = "under-100"
	Budget100To250  Budget = "100-250"
	Budget250To500  Budget = "250-500"
	Budget500To1000 Budget = "500-1000"
	BudgetOver1000  Budget = "1000+"
)

var Budgets = []Budget{BudgetUnder100, Budget100To250, Budget250To500, Budget500To1000, BudgetOver1000}

// Category is the product category a merchant sells.
type Category string

const (
	CategoryClothing    Category = "clothing"
	CategoryFootwear    Category = "footwear"
	CategoryAccessories Category = "accessories"
	CategoryJewelry     Category = "jewelry"
	CategoryBags        Category = "bags"
	CategoryOther       Category = "other"
)

var Categories = []Category{CategoryClothing, CategoryFootwear, CategoryAccessories, CategoryJewelry, CategoryBags, CategoryOther}

// Submission is implemented by every persisted signup record.
type Submission interface {
	Kind() Kind
	SubmissionID() string
	ContactEmail() string
	Received() time.Time
	// Stamp assigns the server-side identity of a new record.
	Stamp(id string, at time.Time)
}

// Customer is a shopper signing up for style matches.
type Customer struct {
	ID          string    `json:"id"          bson:"_id"`
	Name        string    `json:"name"        bson:"name"`
	Email       string    `json:"email"       bson:"email"`
	Style       Style     `json:"style"       bson:"style"`
	Budget      Budget    `json:"budget"      bson:"budget"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submitted_at"`
}

func (c *Customer) Kind() Kind                    { return KindCustomer }
func (c *Customer) SubmissionID() string          { return c.ID }
func (c *Customer) ContactEmail() string          { return c.Email }
func (c *Customer) Received() time.Time           { return c.SubmittedAt }
func (c *Customer) Stamp(id string, at time.Time) { c.ID, c.SubmittedAt = id, at }

// Merchant is a brand or shop applying to list its products.
type Merchant struct {
	ID           string    `json:"id"           bson:"_id"`
	BusinessName string    `json:"businessName" bson:"business_name"`
	ContactName  string    `json:"contactName"  bson:"contact_name"`
	Email        string    `json:"email"        bson:"email"`
	Category     Category  `json:"category"     bson:"category"`
	SubmittedAt  time.Time `json:"submittedAt"  bson:"submitted_at"`
}

func (m *Merchant) Kind() Kind                    { return KindMerchant }
func (m *Merchant) SubmissionID() string          { return m.ID }
func (m *Merchant) ContactEmail() string          { return m.Email }
func (m *Merchant) Received() time.Time           { return m.SubmittedAt }
func (m *Merchant) Stamp(id string, at time.Time) { m.ID, m.SubmittedAt = id, at }
