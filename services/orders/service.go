package orders

import (
	"context"
	"fmt"

	"github.com/MarcGrol/shopreconciler/lib/myerrors"
	"github.com/MarcGrol/shopreconciler/lib/mystore"
)

type service struct {
	store mystore.Store[Order]
}

func newService(store mystore.Store[Order]) *service {
	return &service{
		store: store,
	}
}

func (s *service) listOrdersOfUser(c context.Context, userID string) ([]Order, error) {
	if userID == "" {
		return nil, myerrors.NewInvalidInputErrorf("missing user id")
	}

	orders, err := s.store.Query(c, []mystore.Filter{mystore.Equal("UserID", userID)}, "-OrderDate")
	if err != nil {
		return nil, myerrors.NewPersistenceError(fmt.Errorf("error fetching orders of user %s: %s", userID, err))
	}

	return orders, nil
}

// getOrder accepts the order uid as well as the payment reference
func (s *service) getOrder(c context.Context, orderUID string) (Order, error) {
	order, found, err := s.store.Get(c, orderUID)
	if err != nil {
		return Order{}, myerrors.NewPersistenceError(fmt.Errorf("error fetching order %s: %s", orderUID, err))
	}
	if found {
		return order, nil
	}

	orders, err := s.store.Query(c, []mystore.Filter{mystore.Equal("UID", orderUID)}, "")
	if err != nil {
		return Order{}, myerrors.NewPersistenceError(fmt.Errorf("error fetching order %s: %s", orderUID, err))
	}
	if len(orders) == 0 {
		return Order{}, myerrors.NewNotFoundError(fmt.Errorf("order %s not found", orderUID))
	}

	return orders[0], nil
}
