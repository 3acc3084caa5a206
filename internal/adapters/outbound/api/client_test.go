package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/abdidvp/invdash/internal/adapters/outbound/api"
	"github.com/abdidvp/invdash/internal/adapters/outbound/api/apitest"
	"github.com/abdidvp/invdash/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	token     string
	teardowns int
}

func (s *stubSession) Token() string { return s.token }

func (s *stubSession) Teardown() (bool, error) {
	s.teardowns++
	had := s.token != ""
	s.token = ""
	return had, nil
}

type recordingNav struct{ routes []domain.Route }

func (n *recordingNav) Navigate(r domain.Route) { n.routes = append(n.routes, r) }

func setup(t *testing.T, backendToken, sessionToken string) (*apitest.Backend, *api.Client, *stubSession, *recordingNav) {
	t.Helper()
	b := apitest.NewBackend(backendToken)
	t.Cleanup(b.Close)
	sess := &stubSession{token: sessionToken}
	nav := &recordingNav{}
	return b, api.New(b.URL(), sess, nav), sess, nav
}

func TestClient_AttachesBearerAndJSON(t *testing.T) {
	b, c, _, _ := setup(t, "tok", "tok")
	_, err := api.NewProducts(c).List(context.Background())
	require.NoError(t, err)

	calls := b.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok", calls[0].Authorization)
	assert.Equal(t, "application/json", calls[0].ContentType)
	assert.NotEmpty(t, calls[0].RequestID)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	b, c, _, _ := setup(t, "", "")
	_, err := api.NewProducts(c).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, b.Calls()[0].Authorization)
}

func TestClient_UnauthorizedTearsDownAndNavigates(t *testing.T) {
	_, c, sess, nav := setup(t, "good", "stale")

	_, err := api.NewProducts(c).List(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, sess.teardowns)
	assert.Equal(t, []domain.Route{domain.RouteLogin}, nav.routes)
	assert.Empty(t, sess.token)
}

func TestClient_UnauthorizedOnMutation(t *testing.T) {
	_, c, sess, nav := setup(t, "good", "stale")

	err := api.NewProducts(c).Delete(context.Background(), domain.ParseProductID("1"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, sess.teardowns)
	assert.Len(t, nav.routes, 1)
}

func TestClient_StatusErrorPropagates(t *testing.T) {
	b, c, sess, nav := setup(t, "", "")
	b.FailWith("POST /add", http.StatusInternalServerError)

	err := api.NewProducts(c).Create(context.Background(), domain.Submission{Name: "x"})
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, domain.APIErrorStatus, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "Internal Server Error")
	assert.Zero(t, sess.teardowns)
	assert.Empty(t, nav.routes)
}

func TestClient_TransportError(t *testing.T) {
	b, c, _, _ := setup(t, "", "")
	b.Close()

	_, err := api.NewProducts(c).List(context.Background())
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, domain.APIErrorTransport, apiErr.Kind)
}

func TestProducts_NonArrayListIsEmpty(t *testing.T) {
	for _, body := range []string{`{"items":[]}`, `null`, `"oops"`, `42`} {
		t.Run(body, func(t *testing.T) {
			b, c, _, _ := setup(t, "", "")
			b.ListBody(body)
			products, err := api.NewProducts(c).List(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, products)
			assert.Empty(t, products)
		})
	}
}

func TestProducts_MalformedArrayIsDecodeError(t *testing.T) {
	b, c, _, _ := setup(t, "", "")
	b.ListBody(`[{"id":`)
	_, err := api.NewProducts(c).List(context.Background())
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, domain.APIErrorDecode, apiErr.Kind)
}

func TestProducts_CRUDWireFormat(t *testing.T) {
	b, c, _, _ := setup(t, "", "")
	p := api.NewProducts(c)
	ctx := context.Background()

	sub := domain.Submission{Name: "Widget", Price: domain.NewPrice(decimal.RequireFromString("9.99")), Quantity: 5}
	require.NoError(t, p.Create(ctx, sub))

	products, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, "9.99", products[0].DisplayPrice())
	assert.Equal(t, 5, products[0].StockLevel())

	sub.ID = products[0].ID
	sub.Quantity = 11
	require.NoError(t, p.Update(ctx, sub))
	require.NoError(t, p.Delete(ctx, products[0].ID))

	calls := b.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, []string{"POST /add", "GET /data", "PUT /edit", "DELETE /delete"}, b.Routes())
	assert.Equal(t, 9.99, calls[0].Body["price"])
	assert.Equal(t, float64(5), calls[0].Body["quantity"])
	assert.NotContains(t, calls[0].Body, "id")
	assert.Equal(t, float64(1), calls[2].Body["id"])
	assert.Equal(t, map[string]any{"id": float64(1)}, calls[3].Body)
	assert.Empty(t, b.Products())
}

func TestProducts_EditThenDeleteSeededProduct(t *testing.T) {
	b, c, _, _ := setup(t, "", "")
	p := api.NewProducts(c)
	ctx := context.Background()
	b.Seed(map[string]any{"name": "Bolt", "price": 1.5, "quantity": 3})
	b.Seed(map[string]any{"name": "Nut", "price": 0.5, "quantity": 8})

	products, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	bolt := products[0]

	sub := domain.Submission{ID: bolt.ID, Name: "Bolt M4", Price: domain.NewPrice(decimal.RequireFromString("1.75")), Quantity: 4}
	require.NoError(t, p.Update(ctx, sub))
	require.NoError(t, p.Update(ctx, sub), "a second edit still finds the product")

	stored := b.Products()
	require.Len(t, stored, 2)
	assert.Equal(t, 1, stored[0]["id"], "edit keeps the stored id")
	assert.Equal(t, "Bolt M4", stored[0]["name"])

	require.NoError(t, p.Delete(ctx, bolt.ID))
	stored = b.Products()
	require.Len(t, stored, 1)
	assert.Equal(t, "Nut", stored[0]["name"])
}

func TestProducts_ListDropsOutOfRangePrice(t *testing.T) {
	b, c, _, _ := setup(t, "", "")
	b.ListBody(`[{"id":1,"name":"Bolt","price":1e999999999},{"id":2,"name":"Nut","price":0.5}]`)

	products, err := api.NewProducts(c).List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Nil(t, products[0].Price)
	assert.Equal(t, "0.00", products[0].DisplayPrice())
	assert.Equal(t, "0.50", products[1].DisplayPrice())
}

func TestAuth_LoginReturnsToken(t *testing.T) {
	b, c, _, _ := setup(t, "issued", "")
	res, err := api.NewAuth(c).Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "issued", res.Token)
	assert.Equal(t, []string{"POST /login"}, b.Routes())
}

func TestAuth_SignupUsesRegister(t *testing.T) {
	b, c, _, _ := setup(t, "issued", "")
	_, err := api.NewAuth(c).Signup(context.Background(), domain.Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"POST /register"}, b.Routes())
}

func TestClient_ForwardsCookies(t *testing.T) {
	b, c, _, _ := setup(t, "", "")
	_, err := api.NewAuth(c).Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	_, err = api.NewProducts(c).List(context.Background())
	require.NoError(t, err)

	calls := b.Calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Cookie)
	assert.Contains(t, calls[1].Cookie, "session=")
}
