package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/abdidvp/invdash/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestProduct_IsLowStock_Boundary(t *testing.T) {
	assert.True(t, domain.Product{Quantity: intPtr(10)}.IsLowStock())
	assert.False(t, domain.Product{Quantity: intPtr(11)}.IsLowStock())
	assert.True(t, domain.Product{}.IsLowStock(), "missing quantity counts as zero")
}

func TestProduct_DisplayPrice_TwoDecimals(t *testing.T) {
	p := decimal.RequireFromString("9.9")
	assert.Equal(t, "9.90", domain.Product{Price: &p}.DisplayPrice())
	assert.Equal(t, "0.00", domain.Product{}.DisplayPrice())
}

func TestProduct_DisplayPrice_OutOfRangeExponent(t *testing.T) {
	huge := decimal.RequireFromString("1e999999999")
	assert.Equal(t, "-", domain.Product{Price: &huge}.DisplayPrice())
	assert.False(t, domain.PriceInRange(huge))
	assert.True(t, domain.PriceInRange(decimal.RequireFromString("123456.78")))
}

func TestProduct_DisplayName(t *testing.T) {
	assert.Equal(t, "Unnamed Product", domain.Product{}.DisplayName())
	assert.Equal(t, "Widget", domain.Product{Name: "Widget"}.DisplayName())
}

func TestProduct_KeyFallsBackToRowNumber(t *testing.T) {
	assert.Equal(t, "#4", domain.Product{}.Key(3), "1-based like the table's row column")
	assert.Equal(t, "abc", domain.Product{ID: domain.ParseProductID("abc")}.Key(3))
	assert.Equal(t, "1", domain.Product{ID: domain.ParseProductID("1")}.Key(0))
	assert.NotEqual(t, domain.Product{}.Key(0), domain.Product{ID: domain.ParseProductID("1")}.Key(0))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "-", domain.Placeholder(""))
	assert.Equal(t, "-", domain.Placeholder("  "))
	assert.Equal(t, "tools", domain.Placeholder("tools"))
}

func TestProduct_UnmarshalNullFields(t *testing.T) {
	var p domain.Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"Bolt","price":null,"quantity":null}`), &p))
	assert.Equal(t, "7", p.ID.String())
	assert.Nil(t, p.Price)
	assert.Nil(t, p.Quantity)
}

func TestProductID_PreservesWireForm(t *testing.T) {
	var numeric, text domain.ProductID
	require.NoError(t, json.Unmarshal([]byte(`42`), &numeric))
	require.NoError(t, json.Unmarshal([]byte(`"a-1"`), &text))

	out, err := json.Marshal(numeric)
	require.NoError(t, err)
	assert.Equal(t, `42`, string(out))

	out, err = json.Marshal(text)
	require.NoError(t, err)
	assert.Equal(t, `"a-1"`, string(out))
}

func TestParseProductID(t *testing.T) {
	out, err := json.Marshal(domain.ParseProductID("7"))
	require.NoError(t, err)
	assert.Equal(t, `7`, string(out))

	out, err = json.Marshal(domain.ParseProductID("64f1c2"))
	require.NoError(t, err)
	assert.Equal(t, `"64f1c2"`, string(out))

	assert.True(t, domain.ParseProductID("  ").IsZero())
}

func TestSubmission_EncodesNumbers(t *testing.T) {
	sub := domain.Submission{
		Name:     "Widget",
		Price:    domain.NewPrice(decimal.RequireFromString("9.99")),
		Quantity: 5,
	}
	out, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Widget","sku":"","category":"","price":9.99,"quantity":5,"description":""}`, string(out))
}

func TestSubmission_IncludesIDForUpdates(t *testing.T) {
	sub := domain.Submission{ID: domain.ParseProductID("7"), Name: "Widget", Price: domain.NewPrice(decimal.Zero)}
	out, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":7`)
}
