package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity at or below which a product is flagged.
const LowStockThreshold = 10

// maxPriceExponent bounds the decimal exponent of a price. Formatting expands
// the exponent into digits, so 1e999999999 would never finish printing.
const maxPriceExponent = 20

// PriceInRange reports whether d has an exponent small enough to format.
func PriceInRange(d decimal.Decimal) bool {
	e := d.Exponent()
	return e >= -maxPriceExponent && e <= maxPriceExponent
}

// ProductID is the backend-assigned identifier. It is opaque: numeric ids stay
// numbers and string ids stay strings when echoed back to the backend.
type ProductID struct {
	raw     string
	numeric bool
}

// ParseProductID interprets user input as an identifier. Anything that reads as a
// JSON number is kept numeric.
func ParseProductID(s string) ProductID {
	s = strings.TrimSpace(s)
	if s == "" {
		return ProductID{}
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil && json.Valid([]byte(s)) {
		return ProductID{raw: s, numeric: true}
	}
	return ProductID{raw: s}
}

func (id ProductID) IsZero() bool { return id.raw == "" }

func (id ProductID) String() string { return id.raw }

func (id ProductID) MarshalJSON() ([]byte, error) {
	if id.raw == "" {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ProductID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID{raw: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProductID{raw: n.String(), numeric: true}
	return nil
}

// Product is the record held by the dashboard as returned by the backend. Price and
// Quantity are pointers because the backend may omit them or send null.
type Product struct {
	ID          ProductID        `json:"id"`
	Name        string           `json:"name"`
	SKU         string           `json:"sku"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Description string           `json:"description"`
}

// DisplayName returns the name shown in listings.
func (p Product) DisplayName() string {
	if p.Name == "" {
		return "Unnamed Product"
	}
	return p.Name
}

// DisplayPrice formats the price with two decimal places. A price outside
// PriceInRange renders as a dash.
func (p Product) DisplayPrice() string {
	if p.Price == nil {
		return decimal.Zero.StringFixed(2)
	}
	if !PriceInRange(*p.Price) {
		return "-"
	}
	return p.Price.StringFixed(2)
}

// StockLevel returns the quantity, treating a missing value as zero.
func (p Product) StockLevel() int {
	if p.Quantity == nil {
		return 0
	}
	return *p.Quantity
}

func (p Product) IsLowStock() bool {
	return p.StockLevel() <= LowStockThreshold
}

// Key identifies a row for rendering and selection. index is the row's 0-based
// position; a product without an identifier is keyed "#<row>" using the 1-based
// row number, which cannot collide with a backend id. The fallback never leaves
// the client.
func (p Product) Key(index int) string {
	if p.ID.IsZero() {
		return "#" + strconv.Itoa(index+1)
	}
	return p.ID.String()
}

// Placeholder renders empty optional text as a dash.
func Placeholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// Submission is the payload sent on create and update.
type Submission struct {
	ID          ProductID `json:"id,omitzero"`
	Name        string    `json:"name"        validate:"required"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	Price       Price     `json:"price"       validate:"gte=0"`
	Quantity    int       `json:"quantity"    validate:"gte=0"`
	Description string    `json:"description"`
}

// Price wraps a decimal so it is encoded as a JSON number instead of a string.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price { return Price{Decimal: d} }

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	return p.Decimal.UnmarshalJSON(data)
}
