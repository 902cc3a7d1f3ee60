// Package payments records payments against client balances and keeps
// client.balance equal to the amount owed minus the payments still recorded.
package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clientbook/clientbook/internal/logger"
	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/store"
	"github.com/clientbook/clientbook/internal/validation"
)

// Service provides balance reconciliation for payment create/update/delete.
// Each mutation reads the client, writes the payment and writes the adjusted
// balance inside a single store transaction.
type Service struct {
	store *store.Store
	rules validation.Rules
	now   func() time.Time
}

// NewService creates a payments Service.
func NewService(st *store.Store, rules validation.Rules) *Service {
	return &Service{store: st, rules: rules, now: time.Now}
}

// List returns every payment with its client name, newest first.
func (s *Service) List(ctx context.Context) ([]model.Payment, error) {
	return s.store.ListPayments(ctx)
}

// ListByClient returns the payments recorded for one client.
func (s *Service) ListByClient(ctx context.Context, clientID uint) ([]model.Payment, error) {
	if _, err := s.store.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	return s.store.ListPaymentsByClient(ctx, clientID)
}

// Get returns one payment.
func (s *Service) Get(ctx context.Context, id uint) (*model.Payment, error) {
	return s.store.GetPayment(ctx, id)
}

// Create records a payment of in.Amount against the client and lowers the
// client's balance by that amount. A payment larger than the balance fails
// with *InsufficientBalanceError; a payment equal to it is accepted.
func (s *Service) Create(ctx context.Context, clientID uint, in validation.PaymentInput) (*model.Payment, error) {
	if err := in.Validate(s.rules, s.now()); err != nil {
		return nil, err
	}

	var created *model.Payment
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		client, err := tx.GetClient(ctx, clientID)
		if err != nil {
			return err
		}
		if !client.CanCover(in.Amount) {
			return &InsufficientBalanceError{ClientID: client.ID, Needed: in.Amount, Available: client.Balance}
		}

		p := &model.Payment{
			ClientID:   client.ID,
			Amount:     in.Amount,
			Kind:       in.Kind,
			PaidOn:     s.paidOn(in.PaidOn),
			FiscalYear: in.FiscalYear,
		}
		if err := tx.CreatePayment(ctx, p); err != nil {
			return err
		}

		client.ApplyPaymentDelta(in.Amount)
		if err := tx.SaveClient(ctx, client); err != nil {
			return err
		}

		p.Client = client
		created = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating payment for client %d: %w", clientID, err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Uint("payment_id", created.ID).
		Uint("client_id", clientID).
		Str("amount", created.Amount.StringFixed(2)).
		Str("balance", created.Client.Balance.StringFixed(2)).
		Msg("payment created")
	return created, nil
}

// Update replaces the fields of an existing payment. The client's balance
// moves by the difference between the new and the old amount; an increase
// larger than the current balance fails with *InsufficientBalanceError.
// The owning client never changes.
func (s *Service) Update(ctx context.Context, paymentID uint, in validation.PaymentInput) (*model.Payment, error) {
	if err := in.Validate(s.rules, s.now()); err != nil {
		return nil, err
	}

	var updated *model.Payment
	var delta decimal.Decimal
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		p, err := tx.GetPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		client, err := tx.GetClient(ctx, p.ClientID)
		if err != nil {
			return err
		}

		delta = in.Amount.Sub(p.Amount)
		if !client.CanCover(delta) {
			return &InsufficientBalanceError{ClientID: client.ID, Needed: delta, Available: client.Balance}
		}

		p.Amount = in.Amount
		p.Kind = in.Kind
		p.PaidOn = s.paidOn(in.PaidOn)
		p.FiscalYear = in.FiscalYear
		if err := tx.SavePayment(ctx, p); err != nil {
			return err
		}

		client.ApplyPaymentDelta(delta)
		if err := tx.SaveClient(ctx, client); err != nil {
			return err
		}

		p.Client = client
		updated = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating payment %d: %w", paymentID, err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Uint("payment_id", paymentID).
		Uint("client_id", updated.ClientID).
		Str("delta", delta.StringFixed(2)).
		Str("balance", updated.Client.Balance.StringFixed(2)).
		Msg("payment updated")
	return updated, nil
}

// Delete removes a payment and gives its amount back to the client's
// balance. Deleting an unknown payment is a no-op and reports false.
func (s *Service) Delete(ctx context.Context, paymentID uint) (bool, error) {
	var removed *model.Payment
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		p, err := tx.GetPayment(ctx, paymentID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		client, err := tx.GetClient(ctx, p.ClientID)
		if err != nil {
			return err
		}

		client.ApplyPaymentDelta(p.Amount.Neg())
		if err := tx.SaveClient(ctx, client); err != nil {
			return err
		}
		if err := tx.DeletePayment(ctx, p.ID); err != nil {
			return err
		}

		p.Client = client
		removed = p
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("deleting payment %d: %w", paymentID, err)
	}

	log := logger.FromContext(ctx)
	if removed == nil {
		log.Debug().Uint("payment_id", paymentID).Msg("payment not found, nothing to delete")
		return false, nil
	}
	log.Info().
		Uint("payment_id", paymentID).
		Uint("client_id", removed.ClientID).
		Str("amount", removed.Amount.StringFixed(2)).
		Str("balance", removed.Client.Balance.StringFixed(2)).
		Msg("payment deleted")
	return true, nil
}

// paidOn truncates t to a UTC calendar date. A zero t falls back to today.
func (s *Service) paidOn(t time.Time) time.Time {
	if t.IsZero() {
		t = s.now()
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
