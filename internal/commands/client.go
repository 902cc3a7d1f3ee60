package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/clientbook/clientbook/internal/clients"
	"github.com/clientbook/clientbook/internal/id"
	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/validation"
)

func newClientCommand(opts *globalOptions) *cobra.Command {
	clientCmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
	}
	clientCmd.AddCommand(
		newClientListCommand(opts),
		newClientShowCommand(opts),
		newClientAddCommand(opts),
		newClientEditCommand(opts),
		newClientDeleteCommand(opts),
		newClientFindCommand(opts),
		newClientOptionsCommand(opts),
	)
	return clientCmd
}

// clientFlags binds one string flag per client form field.
func clientFlags(fs *pflag.FlagSet, form *validation.ClientForm) {
	fs.StringVar(&form.LastName, "last-name", "", "last name")
	fs.StringVar(&form.FirstName, "first-name", "", "first name")
	fs.StringVar(&form.Activity, "activity", "", "activity")
	fs.StringVar(&form.Phone, "phone", "", "phone number")
	fs.StringVar(&form.Email, "email", "", "email address")
	fs.StringVar(&form.Address, "address", "", "postal address")
	fs.StringVar(&form.Balance, "balance", "", "amount owed")
	fs.StringVar(&form.Kind, "type", "", "client type")
	fs.StringVar(&form.TaxRegime, "tax-regime", "", "tax regime")
	fs.StringVar(&form.Agent, "agent", "", "agent in charge")
	fs.StringVar(&form.LegalForm, "legal-form", "", "legal form")
	fs.StringVar(&form.SocialRegime, "social-regime", "", "social security regime")
	fs.StringVar(&form.PaymentMode, "payment-mode", "", "payment mode")
	fs.StringVar(&form.MonthlyFee, "monthly-fee", "", "monthly fee")
	fs.StringVar(&form.Indicator, "indicator", "", "indicator")
	fs.StringVar(&form.TaxOffice, "tax-office", "", "tax office")
	fs.StringVar(&form.Notes, "notes", "", "notes")
}

func newClientListCommand(opts *globalOptions) *cobra.Command {
	var params clients.ListParams
	var sort string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Sort = model.ClientSort(sort)
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				list, err := a.clients.List(ctx, params)
				if err != nil {
					return err
				}
				return printClients(cmd.OutOrStdout(), list)
			})
		},
	}

	cmd.Flags().StringVarP(&params.Search, "search", "s", "", "filter on name, phone or activity")
	cmd.Flags().StringVar(&sort, "sort", string(model.SortByName), "sort by name, balance or created")

	return cmd
}

func newClientShowCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				c, err := a.clients.Get(ctx, clientID)
				if err != nil {
					return err
				}
				return printClient(cmd.OutOrStdout(), c)
			})
		},
	}
}

func newClientAddCommand(opts *globalOptions) *cobra.Command {
	var form validation.ClientForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := validation.ParseClient(form)
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				c, err := a.clients.Create(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created client #%s %s (balance %s)\n",
					id.Format(c.ID), c.DisplayName(), c.Balance.StringFixed(2))
				return nil
			})
		},
	}

	clientFlags(cmd.Flags(), &form)

	return cmd
}

func newClientEditCommand(opts *globalOptions) *cobra.Command {
	var changes validation.ClientForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a client; flags left out keep their stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				c, err := a.clients.Get(ctx, clientID)
				if err != nil {
					return err
				}
				form := mergeClientForm(cmd.Flags(), clients.FormOf(c), changes)
				in, err := validation.ParseClient(form)
				if err != nil {
					return err
				}
				c, err = a.clients.Update(ctx, clientID, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated client #%s %s (balance %s)\n",
					id.Format(c.ID), c.DisplayName(), c.Balance.StringFixed(2))
				return nil
			})
		},
	}

	clientFlags(cmd.Flags(), &changes)

	return cmd
}

// mergeClientForm overlays the flags the user set onto the stored form.
func mergeClientForm(fs *pflag.FlagSet, stored, changes validation.ClientForm) validation.ClientForm {
	pick := func(flag string, cur *string, val string) {
		if fs.Changed(flag) {
			*cur = val
		}
	}
	pick("last-name", &stored.LastName, changes.LastName)
	pick("first-name", &stored.FirstName, changes.FirstName)
	pick("activity", &stored.Activity, changes.Activity)
	pick("phone", &stored.Phone, changes.Phone)
	pick("email", &stored.Email, changes.Email)
	pick("address", &stored.Address, changes.Address)
	pick("balance", &stored.Balance, changes.Balance)
	pick("type", &stored.Kind, changes.Kind)
	pick("tax-regime", &stored.TaxRegime, changes.TaxRegime)
	pick("agent", &stored.Agent, changes.Agent)
	pick("legal-form", &stored.LegalForm, changes.LegalForm)
	pick("social-regime", &stored.SocialRegime, changes.SocialRegime)
	pick("payment-mode", &stored.PaymentMode, changes.PaymentMode)
	pick("monthly-fee", &stored.MonthlyFee, changes.MonthlyFee)
	pick("indicator", &stored.Indicator, changes.Indicator)
	pick("tax-office", &stored.TaxOffice, changes.TaxOffice)
	pick("notes", &stored.Notes, changes.Notes)
	return stored
}

func newClientDeleteCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client and all of its payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.clients.Delete(ctx, clientID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted client #%s\n", id.Format(clientID))
				return nil
			})
		},
	}
}

func newClientFindCommand(opts *globalOptions) *cobra.Command {
	var lastName, firstName, phone string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Print the ID of the client with this name and phone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				clientID, ok, err := a.clients.FindID(ctx, lastName, firstName, phone)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no client named %q %q with phone %q", lastName, firstName, phone)
				}
				fmt.Fprintln(cmd.OutOrStdout(), id.Format(clientID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("last-name")

	return cmd
}

func newClientOptionsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List client IDs and display names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				options, err := a.clients.Options(ctx)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				for _, o := range options {
					fmt.Fprintf(tw, "%s\t%s\n", id.Format(o.ID), o.Name)
				}
				return tw.Flush()
			})
		},
	}
}
