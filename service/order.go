package service

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	models "restaurant-ordering/model"
	"restaurant-ordering/order"
)

// OpenOrder starts an ordering session with an empty cart over a fresh copy
// of the menu.
func (s *Service) OpenOrder(ctx context.Context) (models.Order, error) {
	snap, err := s.orders.Open(ctx)
	if err != nil {
		return models.Order{}, err
	}
	s.log.Debug("order session opened", zap.String("session_id", snap.ID), zap.Int("menu_items", snap.Catalog.Len()))
	return toOrder(snap), nil
}

func (s *Service) GetOrder(sessionID string) (models.Order, error) {
	snap, err := s.orders.Get(sessionID)
	if err != nil {
		return models.Order{}, orderErr(err)
	}
	return toOrder(snap), nil
}

func (s *Service) AddToOrder(sessionID, itemID string) (models.Order, error) {
	snap, err := s.orders.Add(sessionID, itemID)
	if err != nil {
		return models.Order{}, orderErr(err)
	}
	return toOrder(snap), nil
}

// RemoveFromOrder takes one unit away; removing an item that is not in the
// cart leaves it as it was.
func (s *Service) RemoveFromOrder(sessionID, itemID string) (models.Order, error) {
	snap, err := s.orders.Remove(sessionID, itemID)
	if err != nil {
		return models.Order{}, orderErr(err)
	}
	return toOrder(snap), nil
}

func (s *Service) CloseOrder(sessionID string) {
	s.orders.Close(sessionID)
	s.log.Debug("order session closed", zap.String("session_id", sessionID))
}

func orderErr(err error) error {
	switch {
	case errors.Is(err, order.ErrSessionNotFound):
		return errors.Wrap(ErrNotFound, "order session")
	case errors.Is(err, order.ErrInvalidItem):
		return invalid(err.Error())
	}
	return err
}

func toOrder(snap order.Snapshot) models.Order {
	return models.Order{
		SessionID: snap.ID,
		Lines:     snap.Lines,
		Total:     snap.Total.StringFixed(2),
		ItemCount: snap.ItemCount,
		OpenedAt:  snap.OpenedAt,
	}
}
