package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/invdash/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle         = lipgloss.NewStyle().Foreground(fg).Width(14)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

var fieldLabels = map[string]string{
	domain.FieldName:        "Product Name",
	domain.FieldSKU:         "SKU",
	domain.FieldCategory:    "Category",
	domain.FieldPrice:       "Price",
	domain.FieldQuantity:    "Quantity",
	domain.FieldDescription: "Description",
}

// FieldLabel returns the form label of a field, with an asterisk when required.
func FieldLabel(field string) string {
	label := fieldLabels[field]
	if label == "" {
		label = field
	}
	if domain.RequiredFields[field] {
		label += " *"
	}
	return label
}

// FormTitle is the modal title for a form mode.
func FormTitle(mode domain.FormMode) string {
	if mode.Kind == domain.FormEdit {
		return "Edit Product"
	}
	return "Add New Product"
}

// RenderForm renders a product modal with the current draft values.
func RenderForm(d domain.Draft) string {
	var b strings.Builder

	b.WriteString(sectionHeaderStyle.Render(FormTitle(d.Mode())))
	b.WriteString("\n\n")
	for _, f := range domain.FormFields {
		v, _ := d.Get(f) // f comes from FormFields
		if v == "" {
			v = faintStyle.Render("(empty)")
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(FieldLabel(f)), v)
	}
	b.WriteString("\n")
	action := "Add Product"
	if d.Mode().Kind == domain.FormEdit {
		action = "Update Product"
	}
	b.WriteString(hintStyle.Render(fmt.Sprintf("submit: %s   cancel: discard changes", action)))

	return boxStyle.Render(b.String()) + "\n"
}

// RenderAuth renders the login or signup view header.
func RenderAuth(mode domain.Route, n *domain.Notification) string {
	title, hint := "Sign in", "No account? Use signup."
	if mode == domain.RouteSignup {
		title, hint = "Create an account", "Already registered? Use login."
	}

	var b strings.Builder
	b.WriteString(boxStyle.Render(headerStyle.Render("Inventory Dashboard") + "\n" + titleStyle.Render(title)))
	b.WriteString("\n")
	if n != nil {
		b.WriteString(RenderNotification(n))
		b.WriteString("\n")
	}
	b.WriteString("  " + hintStyle.Render(hint) + "\n")
	return b.String()
}

// RenderSession describes the stored session without revealing the token.
func RenderSession(user *domain.UserRecord, authenticated bool, expiresAt time.Time, now time.Time) string {
	if !authenticated {
		return "  " + dimStyle.Render("Not signed in.") + "\n"
	}

	var b strings.Builder
	name := "unknown user"
	if user != nil && user.Username != "" {
		name = user.Username
	}
	b.WriteString("  " + titleStyle.Render("Signed in as "+name))
	if user != nil && user.Role != "" {
		b.WriteString(dimStyle.Render(" (" + user.Role + ")"))
	}
	b.WriteString("\n")

	if !expiresAt.IsZero() {
		if expiresAt.After(now) {
			b.WriteString("  " + dimStyle.Render("token expires in "+expiresAt.Sub(now).Round(time.Second).String()) + "\n")
		} else {
			b.WriteString("  " + failStyle.Render("token expired "+now.Sub(expiresAt).Round(time.Second).String()+" ago") + "\n")
		}
	}
	return b.String()
}
