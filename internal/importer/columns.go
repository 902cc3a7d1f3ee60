package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/clientbook/clientbook/internal/validation"
)

type setter func(f *validation.ClientForm, v string)

// columnParser maps CSV header names to client form fields. Unknown columns
// are ignored; the last-name column is mandatory.
type columnParser struct {
	format   string
	lastName string
	columns  map[string]setter
}

// ExportParser reads the CSV produced by client export. The id column is
// ignored: imported clients get new IDs.
func ExportParser() Parser {
	return &columnParser{
		format:   "clientbook",
		lastName: "last_name",
		columns: map[string]setter{
			"last_name":     func(f *validation.ClientForm, v string) { f.LastName = v },
			"first_name":    func(f *validation.ClientForm, v string) { f.FirstName = v },
			"activity":      func(f *validation.ClientForm, v string) { f.Activity = v },
			"phone":         func(f *validation.ClientForm, v string) { f.Phone = v },
			"email":         func(f *validation.ClientForm, v string) { f.Email = v },
			"address":       func(f *validation.ClientForm, v string) { f.Address = v },
			"balance":       func(f *validation.ClientForm, v string) { f.Balance = v },
			"kind":          func(f *validation.ClientForm, v string) { f.Kind = v },
			"tax_regime":    func(f *validation.ClientForm, v string) { f.TaxRegime = v },
			"agent":         func(f *validation.ClientForm, v string) { f.Agent = v },
			"legal_form":    func(f *validation.ClientForm, v string) { f.LegalForm = v },
			"social_regime": func(f *validation.ClientForm, v string) { f.SocialRegime = v },
			"payment_mode":  func(f *validation.ClientForm, v string) { f.PaymentMode = v },
			"monthly_fee":   func(f *validation.ClientForm, v string) { f.MonthlyFee = v },
			"indicator":     func(f *validation.ClientForm, v string) { f.Indicator = v },
			"tax_office":    func(f *validation.ClientForm, v string) { f.TaxOffice = v },
			"notes":         func(f *validation.ClientForm, v string) { f.Notes = v },
		},
	}
}

// LegacyParser reads spreadsheets that use the clients table column names
// (nom, prenom, montant, ...).
func LegacyParser() Parser {
	return &columnParser{
		format:   "legacy",
		lastName: "nom",
		columns: map[string]setter{
			"nom":               func(f *validation.ClientForm, v string) { f.LastName = v },
			"prenom":            func(f *validation.ClientForm, v string) { f.FirstName = v },
			"activite":          func(f *validation.ClientForm, v string) { f.Activity = v },
			"phone":             func(f *validation.ClientForm, v string) { f.Phone = v },
			"telephone":         func(f *validation.ClientForm, v string) { f.Phone = v },
			"email":             func(f *validation.ClientForm, v string) { f.Email = v },
			"address":           func(f *validation.ClientForm, v string) { f.Address = v },
			"adresse":           func(f *validation.ClientForm, v string) { f.Address = v },
			"montant":           func(f *validation.ClientForm, v string) { f.Balance = v },
			"type":              func(f *validation.ClientForm, v string) { f.Kind = v },
			"regime_fiscal":     func(f *validation.ClientForm, v string) { f.TaxRegime = v },
			"agent_responsable": func(f *validation.ClientForm, v string) { f.Agent = v },
			"forme_juridique":   func(f *validation.ClientForm, v string) { f.LegalForm = v },
			"regime_cnas":       func(f *validation.ClientForm, v string) { f.SocialRegime = v },
			"mode_paiement":     func(f *validation.ClientForm, v string) { f.PaymentMode = v },
			"honoraires_mois":   func(f *validation.ClientForm, v string) { f.MonthlyFee = v },
			"indicateur":        func(f *validation.ClientForm, v string) { f.Indicator = v },
			"recette_impots":    func(f *validation.ClientForm, v string) { f.TaxOffice = v },
			"observation":       func(f *validation.ClientForm, v string) { f.Notes = v },
		},
	}
}

// Format returns the parser name.
func (p *columnParser) Format() string { return p.format }

// Parse reads a header row followed by client rows. Blank rows are skipped.
func (p *columnParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	names, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV header: %w", p.format, err)
	}

	header := make([]setter, len(names))
	found := false
	for i, name := range names {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		header[i] = p.columns[name]
		if name == p.lastName {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("reading %s CSV: missing %q column", p.format, p.lastName)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s CSV: %w", p.format, err)
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)

		var form validation.ClientForm
		for j, v := range rec {
			if set := header[j]; set != nil {
				set(&form, v)
			}
		}
		rows = append(rows, Row{Line: line, Form: form})
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
