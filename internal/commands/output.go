package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/clientbook/clientbook/internal/id"
	"github.com/clientbook/clientbook/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printClients(w io.Writer, clients []model.Client) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tACTIVITY\tBALANCE")
	for _, c := range clients {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", id.Format(c.ID), c.DisplayName(), c.Phone, c.Activity, c.Balance.StringFixed(2))
	}
	return tw.Flush()
}

func printClient(w io.Writer, c *model.Client) error {
	tw := newTable(w)
	fields := []struct{ label, value string }{
		{"ID", id.Format(c.ID)},
		{"Last name", c.LastName},
		{"First name", c.FirstName},
		{"Activity", c.Activity},
		{"Phone", c.Phone},
		{"Email", c.Email},
		{"Address", c.Address},
		{"Balance", c.Balance.StringFixed(2)},
		{"Type", c.Kind},
		{"Tax regime", c.TaxRegime},
		{"Agent", c.Agent},
		{"Legal form", c.LegalForm},
		{"Social regime", c.SocialRegime},
		{"Payment mode", c.PaymentMode},
		{"Monthly fee", c.MonthlyFee.StringFixed(2)},
		{"Indicator", c.Indicator},
		{"Tax office", c.TaxOffice},
		{"Notes", c.Notes},
	}
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f.label, f.value)
	}
	return tw.Flush()
}

func printPayments(w io.Writer, payments []model.Payment) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tCLIENT\tTYPE\tYEAR\tAMOUNT")
	for _, p := range payments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			id.Format(p.ID), p.PaidOn.Format(model.DateFormat), p.ClientName(), p.Kind, p.FiscalYear, p.Amount.StringFixed(2))
	}
	return tw.Flush()
}

func printPayment(w io.Writer, p *model.Payment) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", id.Format(p.ID))
	fmt.Fprintf(tw, "Client:\t%s (#%s)\n", p.ClientName(), id.Format(p.ClientID))
	fmt.Fprintf(tw, "Amount:\t%s\n", p.Amount.StringFixed(2))
	fmt.Fprintf(tw, "Type:\t%s\n", p.Kind)
	fmt.Fprintf(tw, "Date:\t%s\n", p.PaidOn.Format(model.DateFormat))
	fmt.Fprintf(tw, "Fiscal year:\t%s\n", strconv.Itoa(p.FiscalYear))
	if p.Client != nil {
		fmt.Fprintf(tw, "Client balance:\t%s\n", p.Client.Balance.StringFixed(2))
	}
	return tw.Flush()
}
