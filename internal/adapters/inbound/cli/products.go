package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/invdash/internal/adapters/inbound/prompt"
	"github.com/abdidvp/invdash/internal/adapters/outbound/tui"
	"github.com/abdidvp/invdash/internal/application"
	"github.com/abdidvp/invdash/internal/domain"
)

func newProductsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"p"},
		Short:   "List and change products",
	}
	cmd.AddCommand(newProductsListCmd(opts))
	cmd.AddCommand(newProductsAddCmd(opts))
	cmd.AddCommand(newProductsEditCmd(opts))
	cmd.AddCommand(newProductsDeleteCmd(opts))
	return cmd
}

func newProductsListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd, string(domain.RouteDashboard))
			if err != nil {
				return err
			}
			dash := a.dashboard(prompt.AssumeYes{})
			if err := dash.Mount(cmd.Context()); err != nil {
				return commandError(err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(dash.Products())
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDashboard(tui.DashboardViewOf(dash, a.session.User())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the products as JSON")
	return cmd
}

func newProductsAddCmd(opts *rootOptions) *cobra.Command {
	fields := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Example: `  invdash products add --name Widget --price 9.99 --quantity 5
  invdash products add --name Gadget --sku GAD-1 --category tools --price 25 --quantity 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd, string(domain.RouteDashboard))
			if err != nil {
				return err
			}
			dash := a.dashboard(prompt.AssumeYes{})
			dash.OpenAdd()
			if err := applyFieldFlags(cmd, dash, fields); err != nil {
				return err
			}
			return submit(cmd, dash)
		},
	}

	registerFieldFlags(cmd, fields)
	return cmd
}

func newProductsEditCmd(opts *rootOptions) *cobra.Command {
	fields := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a product; only the given fields change",
		Long:  "Edit a product by the value in the ID column of `products list`. Rows the backend sent without an id are keyed #<row>.",
		Example: `  invdash products edit 7 --quantity 12
  invdash products edit 7 --description=-`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd, string(domain.RouteDashboard))
			if err != nil {
				return err
			}
			dash := a.dashboard(prompt.AssumeYes{})
			p, err := findProduct(cmd, dash, args[0])
			if err != nil {
				return err
			}
			dash.OpenEdit(p)
			if err := applyFieldFlags(cmd, dash, fields); err != nil {
				return err
			}
			return submit(cmd, dash)
		},
	}

	registerFieldFlags(cmd, fields)
	return cmd
}

func newProductsDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd, string(domain.RouteDashboard))
			if err != nil {
				return err
			}

			var confirm domain.Confirmer = prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirm = prompt.AssumeYes{}
			}
			dash := a.dashboard(confirm)

			p, err := findProduct(cmd, dash, args[0])
			if err != nil {
				return err
			}
			err = dash.Delete(cmd.Context(), p)
			if errors.Is(err, application.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled.")
				return nil
			}
			printNotice(cmd.OutOrStdout(), dash.Notification())
			return commandError(err)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func registerFieldFlags(cmd *cobra.Command, fields map[string]*string) {
	for _, f := range domain.FormFields {
		v := new(string)
		fields[f] = v
		cmd.Flags().StringVar(v, f, "", tui.FieldLabel(f))
	}
}

// applyFieldFlags copies the flags the user set into the open draft. A lone
// dash clears the field.
func applyFieldFlags(cmd *cobra.Command, dash *application.Dashboard, fields map[string]*string) error {
	for _, f := range domain.FormFields {
		if !cmd.Flags().Changed(f) {
			continue
		}
		v := *fields[f]
		if v == prompt.ClearValue {
			v = ""
		}
		if err := dash.SetField(f, v); err != nil {
			return err
		}
	}
	return nil
}

// findProduct loads the list and resolves id against it.
func findProduct(cmd *cobra.Command, dash *application.Dashboard, id string) (domain.Product, error) {
	if err := dash.Mount(cmd.Context()); err != nil {
		return domain.Product{}, commandError(err)
	}
	p, ok := dash.Lookup(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("product %q not found; use the ID column of `invdash products list`", id)
	}
	return p, nil
}

func submit(cmd *cobra.Command, dash *application.Dashboard) error {
	err := dash.Submit(cmd.Context())
	printNotice(cmd.OutOrStdout(), dash.Notification())
	return commandError(err)
}

// commandError turns an unauthorized failure into a sign-in hint. The session
// has already been cleared by the API client.
func commandError(err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		return fmt.Errorf("session expired, run `invdash login`: %w", err)
	}
	return err
}
