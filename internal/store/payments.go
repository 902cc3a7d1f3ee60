package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/clientbook/clientbook/internal/model"
)

const paymentOrder = "date_paiement DESC, id DESC"

// ListPayments returns every payment with its client, newest first.
func (s *Store) ListPayments(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	err := s.db.WithContext(ctx).Preload("Client").Order(paymentOrder).Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	return payments, nil
}

// ListPaymentsByClient returns the payments of one client, newest first.
func (s *Store) ListPaymentsByClient(ctx context.Context, clientID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := s.db.WithContext(ctx).
		Preload("Client").
		Where("client_id = ?", clientID).
		Order(paymentOrder).
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("listing payments of client %d: %w", clientID, err)
	}
	return payments, nil
}

// GetPayment loads a payment and its client by ID.
func (s *Store) GetPayment(ctx context.Context, id uint) (*model.Payment, error) {
	var p model.Payment
	err := s.db.WithContext(ctx).Preload("Client").First(&p, id).Error
	if notFound(err) {
		return nil, fmt.Errorf("payment %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading payment %d: %w", id, err)
	}
	return &p, nil
}

// CreatePayment inserts p and sets its ID. The client row is never touched.
func (s *Store) CreatePayment(ctx context.Context, p *model.Payment) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}
	return nil
}

// SavePayment writes every column of an existing payment.
func (s *Store) SavePayment(ctx context.Context, p *model.Payment) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return fmt.Errorf("saving payment %d: %w", p.ID, err)
	}
	return nil
}

// DeletePayment removes one payment row.
func (s *Store) DeletePayment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Payment{}, id)
	if res.Error != nil {
		return fmt.Errorf("deleting payment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeletePaymentsByClient removes all payments of a client and returns how
// many rows went away.
func (s *Store) DeletePaymentsByClient(ctx context.Context, clientID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&model.Payment{})
	if res.Error != nil {
		return 0, fmt.Errorf("deleting payments of client %d: %w", clientID, res.Error)
	}
	return res.RowsAffected, nil
}
