package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/invdash/internal/application"
	"github.com/abdidvp/invdash/internal/domain"
)

// registerTools registers all invdash MCP tools on the given server.
func registerTools(s *server.MCPServer, deps Deps) {
	s.AddTool(
		mcplib.NewTool("inventory_list_products",
			mcplib.WithDescription("Returns every product in the inventory as JSON"),
		),
		handleListProducts(deps),
	)

	s.AddTool(
		mcplib.NewTool("inventory_create_product", productFieldOptions(
			mcplib.WithDescription("Add a product. name is required; price and quantity must be non-negative numbers."),
		)...),
		handleCreateProduct(deps),
	)

	s.AddTool(
		mcplib.NewTool("inventory_update_product", productFieldOptions(
			mcplib.WithDescription("Update a product by id. Only the given fields change."),
			mcplib.WithString("id", mcplib.Required(), mcplib.Description("Id of the product to update, or #<row> for a product listed without one")),
		)...),
		handleUpdateProduct(deps),
	)

	s.AddTool(
		mcplib.NewTool("inventory_delete_product",
			mcplib.WithDescription("Delete a product by id. Nothing is deleted unless confirm is true."),
			mcplib.WithString("id", mcplib.Required(), mcplib.Description("Id of the product to delete, or #<row> for a product listed without one")),
			mcplib.WithBoolean("confirm", mcplib.Required(), mcplib.Description("Must be true to delete")),
		),
		handleDeleteProduct(deps),
	)
}

func productFieldOptions(opts ...mcplib.ToolOption) []mcplib.ToolOption {
	return append(opts,
		mcplib.WithString(domain.FieldName, mcplib.Description("Product name")),
		mcplib.WithString(domain.FieldSKU, mcplib.Description("Stock keeping unit")),
		mcplib.WithString(domain.FieldCategory, mcplib.Description("Category")),
		mcplib.WithString(domain.FieldPrice, mcplib.Description("Unit price, e.g. 9.99")),
		mcplib.WithString(domain.FieldQuantity, mcplib.Description("Units in stock, a whole number")),
		mcplib.WithString(domain.FieldDescription, mcplib.Description("Free-form description")),
	)
}

// confirmArg answers the delete confirmation with the tool's confirm argument.
type confirmArg bool

func (c confirmArg) Confirm(string) bool { return bool(c) }

func newDashboard(deps Deps, confirm domain.Confirmer) *application.Dashboard {
	return application.NewDashboard(deps.Products, confirm, domain.NewNotifier(deps.Now, 0), deps.Logger)
}

func handleListProducts(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dash := newDashboard(deps, confirmArg(false))
		if err := dash.Mount(ctx); err != nil {
			return failure(dash, err), nil
		}
		return jsonResult(dash.Products())
	}
}

func handleCreateProduct(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dash := newDashboard(deps, confirmArg(false))
		dash.OpenAdd()
		if err := applyArguments(dash, request.GetArguments()); err != nil {
			return errorResult(err.Error()), nil
		}
		if err := dash.Submit(ctx); err != nil {
			return failure(dash, err), nil
		}
		return textResult(noticeText(dash)), nil
	}
}

func handleUpdateProduct(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dash := newDashboard(deps, confirmArg(false))
		p, res := lookup(ctx, dash, request)
		if res != nil {
			return res, nil
		}
		dash.OpenEdit(p)
		if err := applyArguments(dash, request.GetArguments()); err != nil {
			return errorResult(err.Error()), nil
		}
		if err := dash.Submit(ctx); err != nil {
			return failure(dash, err), nil
		}
		return textResult(noticeText(dash)), nil
	}
}

func handleDeleteProduct(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		confirm, _ := request.GetArguments()["confirm"].(bool)
		if !confirm {
			return errorResult("deletion requires confirm: true"), nil
		}

		dash := newDashboard(deps, confirmArg(confirm))
		p, res := lookup(ctx, dash, request)
		if res != nil {
			return res, nil
		}
		if err := dash.Delete(ctx, p); err != nil {
			return failure(dash, err), nil
		}
		return textResult(noticeText(dash)), nil
	}
}

// lookup loads the list and finds the product named by the id argument. A
// non-nil result is the error to return to the caller.
func lookup(ctx context.Context, dash *application.Dashboard, request mcplib.CallToolRequest) (domain.Product, *mcplib.CallToolResult) {
	id, err := request.RequireString("id")
	if err != nil {
		return domain.Product{}, errorResult(err.Error())
	}
	if err := dash.Mount(ctx); err != nil {
		return domain.Product{}, failure(dash, err)
	}
	p, ok := dash.Lookup(id)
	if !ok {
		return domain.Product{}, errorResult(fmt.Sprintf("product %q not found", id))
	}
	return p, nil
}

// applyArguments copies product fields from tool arguments into the open draft.
// Numbers are accepted for price and quantity as well as strings.
func applyArguments(dash *application.Dashboard, args map[string]any) error {
	for _, f := range domain.FormFields {
		raw, ok := args[f]
		if !ok || raw == nil {
			continue
		}
		var v string
		switch x := raw.(type) {
		case string:
			v = x
		case float64:
			v = strconv.FormatFloat(x, 'f', -1, 64)
		case json.Number:
			v = x.String()
		default:
			return fmt.Errorf("%s: expected a string, got %T", f, raw)
		}
		if err := dash.SetField(f, v); err != nil {
			return err
		}
	}
	return nil
}

func noticeText(dash *application.Dashboard) string {
	if n := dash.Notification(); n != nil {
		return n.Message
	}
	return "ok"
}

// failure reports a failed operation with the message the dashboard would show.
func failure(dash *application.Dashboard, err error) *mcplib.CallToolResult {
	if errors.Is(err, domain.ErrUnauthorized) {
		return errorResult("session expired, run `invdash login` and retry")
	}
	if msg := dash.Error(); msg != "" {
		return errorResult(msg)
	}
	if n := dash.Notification(); n != nil && n.Kind == domain.NotifyError {
		return errorResult(n.Message)
	}
	return errorResult(err.Error())
}

// jsonResult marshals v as indented JSON into a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
