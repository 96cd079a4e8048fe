package service

import (
	"context"

	"github.com/google/uuid"

	"aguacates-backend/internal/domains/cart/engine"
	"aguacates-backend/internal/domains/cart/model"
	"aguacates-backend/internal/domains/cart/store"
	catalogmodel "aguacates-backend/internal/domains/catalog/model"
	catalogservice "aguacates-backend/internal/domains/catalog/service"
)

type CartService struct {
	store   store.Store
	engine  *engine.Engine
	catalog catalogservice.ServiceInterface
}

func NewCartService(st store.Store, eng *engine.Engine, catalog catalogservice.ServiceInterface) *CartService {
	return &CartService{
		store:   st,
		engine:  eng,
		catalog: catalog,
	}
}

// loadOrCreate fetches the session's cart, minting a fresh one when the
// session has none yet or its stored cart was discarded.
func (s *CartService) loadOrCreate(ctx context.Context, sessionID string) (model.Cart, error) {
	cart, found, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return model.Cart{}, err
	}
	if !found {
		return s.engine.NewCart(), nil
	}
	return *cart, nil
}

func (s *CartService) persist(ctx context.Context, sessionID string, cart model.Cart) (*model.Cart, error) {
	if err := s.store.Save(ctx, sessionID, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartService) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, variantID *uuid.UUID, quantity int) (*model.Cart, error) {
	product, variant, err := s.catalog.ResolveSnapshot(ctx, productID, variantID, quantity)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart = s.engine.AddItem(ctx, cart, snapshotProduct(product), snapshotVariant(variant), quantity)
	return s.persist(ctx, sessionID, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID, variantID *uuid.UUID) (*model.Cart, error) {
	cart, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart = s.engine.RemoveItem(ctx, cart, productID, variantID)
	return s.persist(ctx, sessionID, cart)
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, variantID *uuid.UUID) (*model.Cart, error) {
	cart, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Raising the quantity of an existing line still has to clear the
	// stock check; lowering or removing it never does.
	if idx := indexOfLine(cart, productID, variantID); idx >= 0 && quantity > cart.Items[idx].Quantity {
		if _, _, err := s.catalog.ResolveSnapshot(ctx, productID, variantID, quantity); err != nil {
			return nil, err
		}
	}

	cart = s.engine.UpdateQuantity(ctx, cart, productID, quantity, variantID)
	return s.persist(ctx, sessionID, cart)
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart = s.engine.ClearCart(cart)
	return s.persist(ctx, sessionID, cart)
}

func (s *CartService) ApplyCoupon(ctx context.Context, sessionID, code, email string) (*model.Cart, error) {
	cart, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart, err = s.engine.ApplyCoupon(ctx, cart, code, email)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, sessionID, cart)
}

func (s *CartService) RemoveCoupon(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart = s.engine.RemoveCoupon(ctx, cart)
	return s.persist(ctx, sessionID, cart)
}

func (s *CartService) CalculateShipping(ctx context.Context, sessionID, location string) (*model.Cart, error) {
	cart, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Shipping = s.engine.CalculateShipping(ctx, cart, location)
	return s.persist(ctx, sessionID, cart)
}

func indexOfLine(cart model.Cart, productID uuid.UUID, variantID *uuid.UUID) int {
	for i := range cart.Items {
		item := &cart.Items[i]
		if item.Product.ID != productID {
			continue
		}
		switch {
		case variantID == nil && item.Variant == nil:
			return i
		case variantID != nil && item.Variant != nil && item.Variant.ID == *variantID:
			return i
		}
	}
	return -1
}

func snapshotProduct(p *catalogmodel.Product) model.ProductSnapshot {
	return model.ProductSnapshot{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Unit:          p.Unit,
		ImageURL:      p.ImageURL,
	}
}

func snapshotVariant(v *catalogmodel.ProductVariant) *model.VariantSnapshot {
	if v == nil {
		return nil
	}
	return &model.VariantSnapshot{
		ID:           v.ID,
		VariantName:  v.VariantName,
		VariantValue: v.VariantValue,
		Price:        v.Price,
	}
}
