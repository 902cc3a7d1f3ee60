package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/clientbook/clientbook/internal/id"
	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/validation"
)

func newPaymentCommand(opts *globalOptions) *cobra.Command {
	paymentCmd := &cobra.Command{
		Use:     "payment",
		Aliases: []string{"payments", "versement"},
		Short:   "Record payments against client balances",
	}
	paymentCmd.AddCommand(
		newPaymentListCommand(opts),
		newPaymentShowCommand(opts),
		newPaymentAddCommand(opts),
		newPaymentEditCommand(opts),
		newPaymentDeleteCommand(opts),
	)
	return paymentCmd
}

// paymentFlags binds the payment form fields. Date and fiscal year default
// to today.
func paymentFlags(fs *pflag.FlagSet, form *validation.PaymentForm) {
	now := time.Now()
	fs.StringVar(&form.Amount, "amount", "", "amount paid")
	fs.StringVar(&form.Kind, "type", "", "payment type (cash, transfer, cheque...)")
	fs.StringVar(&form.PaidOn, "date", now.Format(model.DateFormat), "payment date, YYYY-MM-DD")
	fs.StringVar(&form.FiscalYear, "year", strconv.Itoa(now.Year()), "fiscal year the payment applies to")
}

func newPaymentListCommand(opts *globalOptions) *cobra.Command {
	var clientArg string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				var list []model.Payment
				if clientArg == "" {
					l, err := a.payments.List(ctx)
					if err != nil {
						return err
					}
					list = l
				} else {
					clientID, err := id.Parse(clientArg)
					if err != nil {
						return err
					}
					l, err := a.payments.ListByClient(ctx, clientID)
					if err != nil {
						return err
					}
					list = l
				}
				return printPayments(cmd.OutOrStdout(), list)
			})
		},
	}

	cmd.Flags().StringVar(&clientArg, "client", "", "only payments of this client ID")

	return cmd
}

func newPaymentShowCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paymentID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				p, err := a.payments.Get(ctx, paymentID)
				if err != nil {
					return err
				}
				return printPayment(cmd.OutOrStdout(), p)
			})
		},
	}
}

func newPaymentAddCommand(opts *globalOptions) *cobra.Command {
	var form validation.PaymentForm
	var clientArg string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payment and lower the client's balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := id.Parse(clientArg)
			if err != nil {
				return fmt.Errorf("--client: %w", err)
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				in, err := validation.ParsePayment(form, rulesOf(a), time.Now())
				if err != nil {
					return err
				}
				p, err := a.payments.Create(ctx, clientID, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded payment #%s of %s for %s, balance now %s\n",
					id.Format(p.ID), p.Amount.StringFixed(2), p.ClientName(), p.Client.Balance.StringFixed(2))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&clientArg, "client", "", "client ID")
	_ = cmd.MarkFlagRequired("client")
	paymentFlags(cmd.Flags(), &form)

	return cmd
}

func newPaymentEditCommand(opts *globalOptions) *cobra.Command {
	var changes validation.PaymentForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a payment; the client's balance moves by the difference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paymentID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				p, err := a.payments.Get(ctx, paymentID)
				if err != nil {
					return err
				}
				form := mergePaymentForm(cmd.Flags(), paymentFormOf(p), changes)
				in, err := validation.ParsePayment(form, rulesOf(a), time.Now())
				if err != nil {
					return err
				}
				p, err = a.payments.Update(ctx, paymentID, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated payment #%s to %s, balance now %s\n",
					id.Format(p.ID), p.Amount.StringFixed(2), p.Client.Balance.StringFixed(2))
				return nil
			})
		},
	}

	paymentFlags(cmd.Flags(), &changes)

	return cmd
}

func paymentFormOf(p *model.Payment) validation.PaymentForm {
	return validation.PaymentForm{
		Amount:     p.Amount.StringFixed(2),
		Kind:       p.Kind,
		FiscalYear: strconv.Itoa(p.FiscalYear),
		PaidOn:     p.PaidOn.Format(model.DateFormat),
	}
}

func mergePaymentForm(fs *pflag.FlagSet, stored, changes validation.PaymentForm) validation.PaymentForm {
	if fs.Changed("amount") {
		stored.Amount = changes.Amount
	}
	if fs.Changed("type") {
		stored.Kind = changes.Kind
	}
	if fs.Changed("date") {
		stored.PaidOn = changes.PaidOn
	}
	if fs.Changed("year") {
		stored.FiscalYear = changes.FiscalYear
	}
	return stored
}

func newPaymentDeleteCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a payment and give its amount back to the client's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paymentID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				deleted, err := a.payments.Delete(ctx, paymentID)
				if err != nil {
					return err
				}
				if !deleted {
					fmt.Fprintf(cmd.OutOrStdout(), "No payment #%s, nothing to delete\n", id.Format(paymentID))
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted payment #%s\n", id.Format(paymentID))
				return nil
			})
		},
	}
}

func rulesOf(a *app) validation.Rules {
	return validation.Rules{
		MinFiscalYear: a.cfg.Validation.MinFiscalYear,
		MaxYearsAhead: a.cfg.Validation.MaxYearsAhead,
	}
}
