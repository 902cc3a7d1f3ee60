package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/clientbook/clientbook/internal/model"
)

var clientOrder = map[model.ClientSort]string{
	model.SortByName:    "nom ASC, prenom ASC",
	model.SortByBalance: "montant DESC",
	model.SortByCreated: "id DESC",
}

// ListClients returns clients whose last name, first name, phone or activity
// contains search (case-insensitive). Unknown sort keys fall back to name order.
func (s *Store) ListClients(ctx context.Context, search string, sort model.ClientSort) ([]model.Client, error) {
	order, ok := clientOrder[sort]
	if !ok {
		order = clientOrder[model.SortByName]
	}

	q := s.db.WithContext(ctx).Model(&model.Client{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(nom) LIKE ? OR LOWER(prenom) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(activite) LIKE ?",
			like, like, like, like)
	}

	var clients []model.Client
	if err := q.Order(order).Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return clients, nil
}

// GetClient loads a client by ID.
func (s *Store) GetClient(ctx context.Context, id uint) (*model.Client, error) {
	var c model.Client
	err := s.db.WithContext(ctx).First(&c, id).Error
	if notFound(err) {
		return nil, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading client %d: %w", id, err)
	}
	return &c, nil
}

// FindClientID returns the ID of the first client matching the natural key.
func (s *Store) FindClientID(ctx context.Context, lastName, firstName, phone string) (uint, bool, error) {
	var c model.Client
	err := s.db.WithContext(ctx).
		Select("id").
		Where("nom = ? AND prenom = ? AND phone = ?", lastName, firstName, phone).
		Order("id").
		Take(&c).Error
	if notFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("looking up client: %w", err)
	}
	return c.ID, true, nil
}

// CreateClient inserts c and sets its ID.
func (s *Store) CreateClient(ctx context.Context, c *model.Client) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	return nil
}

// SaveClient writes every column of an existing client.
func (s *Store) SaveClient(ctx context.Context, c *model.Client) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error; err != nil {
		return fmt.Errorf("saving client %d: %w", c.ID, err)
	}
	return nil
}

// DeleteClient removes the client row. Payments must be removed first.
func (s *Store) DeleteClient(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Client{}, id)
	if res.Error != nil {
		return fmt.Errorf("deleting client %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return nil
}

// ClientOptions lists id/display-name pairs ordered by name.
func (s *Store) ClientOptions(ctx context.Context) ([]model.ClientOption, error) {
	var clients []model.Client
	err := s.db.WithContext(ctx).
		Select("id", "nom", "prenom").
		Order(clientOrder[model.SortByName]).
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("listing client options: %w", err)
	}

	opts := make([]model.ClientOption, len(clients))
	for i, c := range clients {
		opts[i] = model.ClientOption{ID: c.ID, Name: c.DisplayName()}
	}
	return opts, nil
}
