package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/abdidvp/invdash/internal/application"
	"github.com/abdidvp/invdash/internal/domain"
)

// ── palette ──
var (
	accent  = lipgloss.Color("#2563EB") // blue
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	tableHeader   = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// DashboardView is everything the dashboard screen shows.
type DashboardView struct {
	State        application.ViewState
	Error        string
	Products     []domain.Product
	Notification *domain.Notification
	User         *domain.UserRecord
}

// DashboardViewOf captures the current state of a dashboard for rendering.
func DashboardViewOf(d *application.Dashboard, user *domain.UserRecord) DashboardView {
	return DashboardView{
		State:        d.State(),
		Error:        d.Error(),
		Products:     d.Products(),
		Notification: d.Notification(),
		User:         user,
	}
}

// RenderDashboard renders the header, notification and the active state branch.
func RenderDashboard(v DashboardView) string {
	var b strings.Builder

	title := headerStyle.Render("Inventory Dashboard")
	subtitle := dimStyle.Render("Manage your products")
	if v.User != nil && v.User.Username != "" {
		subtitle += dimStyle.Render("  ·  signed in as " + v.User.Username)
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle))
	b.WriteString("\n")

	if v.Notification != nil {
		b.WriteString(RenderNotification(v.Notification))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch v.State {
	case application.StateLoading:
		b.WriteString("  " + dimStyle.Render("Loading products...") + "\n")
	case application.StateError:
		b.WriteString("  " + failStyle.Render(v.Error) + "\n")
		b.WriteString("  " + dimStyle.Render("type 'retry' to try again") + "\n")
	default:
		b.WriteString("  " + titleStyle.Render(fmt.Sprintf("Products (%d)", len(v.Products))) + "\n")
		b.WriteString("  " + separatorLine + "\n")
		if v.State == application.StateEmpty {
			b.WriteString("  " + dimStyle.Render("No products found. Add your first product to get started.") + "\n")
		} else {
			b.WriteString(RenderProductTable(v.Products))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderProductTable renders products as a table. Row numbers are 1-based and
// are what the dashboard commands accept.
func RenderProductTable(products []domain.Product) string {
	rows := make([][]string, 0, len(products))
	for i, p := range products {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Key(i),
			productCell(p),
			domain.Placeholder(p.SKU),
			domain.Placeholder(p.Category),
			"$" + p.DisplayPrice(),
			StockBadge(p),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(faintStyle).
		Headers("#", "ID", "Product", "SKU", "Category", "Price", "Quantity").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader
			}
			return cellStyle
		})

	return t.Render()
}

func productCell(p domain.Product) string {
	name := titleStyle.Render(p.DisplayName())
	if p.Description == "" {
		return name
	}
	return name + "\n" + dimStyle.Render(p.Description)
}

// StockBadge renders the quantity, marking low stock.
func StockBadge(p domain.Product) string {
	text := fmt.Sprintf("%d in stock", p.StockLevel())
	if p.IsLowStock() {
		return failStyle.Render(text + " (low)")
	}
	return passStyle.Render(text)
}

// RenderNotification renders a success or error banner.
func RenderNotification(n *domain.Notification) string {
	if n == nil {
		return ""
	}
	if n.Kind == domain.NotifySuccess {
		return "  " + passStyle.Render("✓ "+n.Message)
	}
	return "  " + failStyle.Render("✗ "+n.Message)
}
