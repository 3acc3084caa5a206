package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormKind tells whether a draft creates a new product or edits an existing one.
type FormKind int

const (
	FormAdd FormKind = iota
	FormEdit
)

func (k FormKind) String() string {
	if k == FormEdit {
		return "edit"
	}
	return "add"
}

// FormMode tags a draft with the flow that owns it. OriginalID is only set for
// FormEdit and does not change for the lifetime of the draft.
type FormMode struct {
	Kind       FormKind
	OriginalID ProductID
}

// Field names accepted by Draft.Set, in form order.
const (
	FieldName        = "name"
	FieldSKU         = "sku"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldQuantity    = "quantity"
	FieldDescription = "description"
)

// FormFields lists the editable fields in the order the form presents them.
var FormFields = []string{FieldName, FieldSKU, FieldCategory, FieldPrice, FieldQuantity, FieldDescription}

// RequiredFields marks the fields the form labels with an asterisk.
var RequiredFields = map[string]bool{FieldName: true, FieldPrice: true, FieldQuantity: true}

// Draft is the editable, not-yet-submitted text of a product form.
type Draft struct {
	mode        FormMode
	Name        string
	SKU         string
	Category    string
	Price       string
	Quantity    string
	Description string
}

// NewAddDraft returns an empty draft for the add flow.
func NewAddDraft() Draft {
	return Draft{mode: FormMode{Kind: FormAdd}}
}

// DraftFromProduct pre-populates an edit draft. Missing values become empty text.
func DraftFromProduct(p Product) Draft {
	d := Draft{
		mode:        FormMode{Kind: FormEdit, OriginalID: p.ID},
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Description: p.Description,
	}
	if p.Price != nil && PriceInRange(*p.Price) {
		d.Price = p.Price.String()
	}
	if p.Quantity != nil {
		d.Quantity = strconv.Itoa(*p.Quantity)
	}
	return d
}

func (d Draft) Mode() FormMode { return d.mode }

// Get returns the text of a field.
func (d Draft) Get(field string) (string, error) {
	switch field {
	case FieldName:
		return d.Name, nil
	case FieldSKU:
		return d.SKU, nil
	case FieldCategory:
		return d.Category, nil
	case FieldPrice:
		return d.Price, nil
	case FieldQuantity:
		return d.Quantity, nil
	case FieldDescription:
		return d.Description, nil
	}
	return "", fmt.Errorf("unknown form field %q", field)
}

// Set replaces the text of a field.
func (d *Draft) Set(field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldSKU:
		d.SKU = value
	case FieldCategory:
		d.Category = value
	case FieldPrice:
		d.Price = value
	case FieldQuantity:
		d.Quantity = value
	case FieldDescription:
		d.Description = value
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	return nil
}

// Parse validates the draft and coerces it into a submission. Rules are checked in
// order (name, price, quantity) and the first failure is returned.
func (d Draft) Parse() (Submission, error) {
	if strings.TrimSpace(d.Name) == "" {
		return Submission{}, &ValidationError{Field: FieldName, Message: "Product name is required"}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(d.Price))
	if err != nil || price.IsNegative() || !PriceInRange(price) {
		return Submission{}, &ValidationError{Field: FieldPrice, Message: "Valid price is required"}
	}

	qty, err := strconv.Atoi(strings.TrimSpace(d.Quantity))
	if err != nil || qty < 0 {
		return Submission{}, &ValidationError{Field: FieldQuantity, Message: "Valid quantity is required"}
	}

	sub := Submission{
		Name:        d.Name,
		SKU:         d.SKU,
		Category:    d.Category,
		Price:       NewPrice(price),
		Quantity:    qty,
		Description: d.Description,
	}
	if d.mode.Kind == FormEdit {
		sub.ID = d.mode.OriginalID
	}

	if err := ValidateStruct(sub); err != nil {
		return Submission{}, err
	}
	return sub, nil
}
