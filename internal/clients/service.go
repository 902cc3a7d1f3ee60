// Package clients manages client records: listing, lookup, full-form
// create/update and cascade delete.
package clients

import (
	"context"
	"fmt"

	"github.com/clientbook/clientbook/internal/logger"
	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/store"
	"github.com/clientbook/clientbook/internal/validation"
)

// ListParams filters and orders a client listing.
type ListParams struct {
	Search string
	Sort   model.ClientSort
}

// Service provides client operations over a store.
type Service struct {
	store *store.Store
}

// NewService creates a clients Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// List returns clients matching p.Search, ordered by p.Sort.
func (s *Service) List(ctx context.Context, p ListParams) ([]model.Client, error) {
	return s.store.ListClients(ctx, p.Search, p.Sort)
}

// Get returns a client by ID.
func (s *Service) Get(ctx context.Context, id uint) (*model.Client, error) {
	return s.store.GetClient(ctx, id)
}

// FindID looks a client up by last name, first name and phone.
func (s *Service) FindID(ctx context.Context, lastName, firstName, phone string) (uint, bool, error) {
	return s.store.FindClientID(ctx, lastName, firstName, phone)
}

// Options returns id/display-name pairs ordered by name.
func (s *Service) Options(ctx context.Context) ([]model.ClientOption, error) {
	return s.store.ClientOptions(ctx)
}

// Create inserts a new client from a validated input.
func (s *Service) Create(ctx context.Context, in validation.ClientInput) (*model.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c := &model.Client{}
	apply(c, in)
	if err := s.store.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info().
		Uint("client_id", c.ID).
		Str("name", c.DisplayName()).
		Str("balance", c.Balance.StringFixed(2)).
		Msg("client created")
	return c, nil
}

// Update overwrites every field of an existing client, balance included.
func (s *Service) Update(ctx context.Context, id uint, in validation.ClientInput) (*model.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var updated *model.Client
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		c, err := tx.GetClient(ctx, id)
		if err != nil {
			return err
		}
		apply(c, in)
		if err := tx.SaveClient(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating client %d: %w", id, err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Uint("client_id", id).
		Str("balance", updated.Balance.StringFixed(2)).
		Msg("client updated")
	return updated, nil
}

// Delete removes the client's payments and then the client. The balance is
// not reconciled: it goes away with the client.
func (s *Service) Delete(ctx context.Context, id uint) error {
	var removed int64
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := tx.GetClient(ctx, id); err != nil {
			return err
		}
		n, err := tx.DeletePaymentsByClient(ctx, id)
		if err != nil {
			return err
		}
		removed = n
		return tx.DeleteClient(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting client %d: %w", id, err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Uint("client_id", id).
		Int64("payments_deleted", removed).
		Msg("client deleted")
	return nil
}

// FormOf returns the stored client as a form, so edits can start from the
// current values.
func FormOf(c *model.Client) validation.ClientForm {
	return validation.ClientForm{
		LastName:     c.LastName,
		FirstName:    c.FirstName,
		Activity:     c.Activity,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		Balance:      c.Balance.StringFixed(2),
		Kind:         c.Kind,
		TaxRegime:    c.TaxRegime,
		Agent:        c.Agent,
		LegalForm:    c.LegalForm,
		SocialRegime: c.SocialRegime,
		PaymentMode:  c.PaymentMode,
		MonthlyFee:   c.MonthlyFee.StringFixed(2),
		Indicator:    c.Indicator,
		TaxOffice:    c.TaxOffice,
		Notes:        c.Notes,
	}
}

func apply(c *model.Client, in validation.ClientInput) {
	c.LastName = in.LastName
	c.FirstName = in.FirstName
	c.Activity = in.Activity
	c.Phone = in.Phone
	c.Email = in.Email
	c.Address = in.Address
	c.SetBalance(in.Balance)
	c.Kind = in.Kind
	c.TaxRegime = in.TaxRegime
	c.Agent = in.Agent
	c.LegalForm = in.LegalForm
	c.SocialRegime = in.SocialRegime
	c.PaymentMode = in.PaymentMode
	c.MonthlyFee = in.MonthlyFee
	c.Indicator = in.Indicator
	c.TaxOffice = in.TaxOffice
	c.Notes = in.Notes
}
