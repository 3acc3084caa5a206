// Package apitest provides an in-memory inventory backend for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Call records one request the backend received.
type Call struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
	Cookie        string
	Body          map[string]any
}

// Backend serves /data, /add, /edit, /delete, /login and /register from memory.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	products  []map[string]any
	nextID    int
	calls     []Call
	token     string
	failures  map[string]int
	listBody  string
	issuedFor string
}

// NewBackend starts a backend. When token is non-empty the product routes
// answer 401 unless the request carries it as a bearer credential.
func NewBackend(token string) *Backend {
	b := &Backend{token: token, nextID: 1, failures: map[string]int{}}

	r := chi.NewRouter()
	r.Use(b.record)
	r.Post("/login", b.handleLogin)
	r.Post("/register", b.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(b.requireToken)
		r.Get("/data", b.handleList)
		r.Post("/add", b.handleAdd)
		r.Put("/edit", b.handleEdit)
		r.Delete("/delete", b.handleDelete)
	})

	b.Server = httptest.NewServer(r)
	return b
}

func (b *Backend) URL() string { return b.Server.URL }

func (b *Backend) Close() { b.Server.Close() }

// Seed adds a product with the next numeric id and returns that id.
func (b *Backend) Seed(fields map[string]any) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	p := map[string]any{"id": id}
	for k, v := range fields {
		p[k] = v
	}
	b.products = append(b.products, p)
	return id
}

// FailWith makes "METHOD /path" answer with status until cleared with 0.
func (b *Backend) FailWith(route string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = status
}

// ListBody overrides the /data response body verbatim.
func (b *Backend) ListBody(body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listBody = body
}

// IssueToken sets the token returned by /login and /register.
func (b *Backend) IssueToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.issuedFor = token
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// Routes returns the "METHOD /path" of every call, in order.
func (b *Backend) Routes() []string {
	var out []string
	for _, c := range b.Calls() {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

func (b *Backend) Products() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]map[string]any, len(b.products))
	copy(out, b.products)
	return out
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		b.mu.Lock()
		b.calls = append(b.calls, Call{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Cookie:        r.Header.Get("Cookie"),
			Body:          body,
		})
		status := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if body != nil {
			r = r.WithContext(withBody(r.Context(), body))
		}
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.token != "" && r.Header.Get("Authorization") != "Bearer "+b.token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	if body["username"] == nil || body["password"] == nil {
		http.Error(w, "Missing credentials", http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	token := b.issuedFor
	b.mu.Unlock()
	if token == "" {
		token = b.token
	}
	http.SetCookie(w, &http.Cookie{Name: "session", Value: "s-" + strconv.Itoa(len(b.Calls())), Path: "/"})
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (b *Backend) handleList(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	override := b.listBody
	products := make([]map[string]any, len(b.products))
	copy(products, b.products)
	b.mu.Unlock()

	if override != "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(override))
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (b *Backend) handleAdd(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	if name, _ := body["name"].(string); strings.TrimSpace(name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	delete(body, "id")
	id := b.Seed(body)
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (b *Backend) handleEdit(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, p := range b.products {
		if sameID(p["id"], body["id"]) {
			for k, v := range body {
				if k == "id" {
					continue
				}
				b.products[i][k] = v
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "product not found", http.StatusNotFound)
}

func (b *Backend) handleDelete(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, p := range b.products {
		if sameID(p["id"], body["id"]) {
			b.products = append(b.products[:i], b.products[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "product not found", http.StatusNotFound)
}

// sameID compares ids by their decimal form, so a seeded int, a decoded
// float64 and a string all match.
func sameID(stored, got any) bool {
	a, ok := idString(stored)
	if !ok {
		return false
	}
	b, ok := idString(got)
	return ok && a == b
}

func idString(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case string:
		return n, n != ""
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
