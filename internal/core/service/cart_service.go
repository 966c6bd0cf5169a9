package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"cart_service/internal/core/domain"
	"cart_service/internal/ports/inbound"
	"cart_service/internal/ports/outbound"
)

const DefaultSlotKey = "@RocketShoes:cart"

// CartService is the single process-wide cart. Mutations are serialized and
// write-through: the slot is written first and in-memory state is replaced
// only after the write succeeded.
type CartService struct {
	slot     outbound.SlotStore
	slotKey  string
	catalog  outbound.Catalog
	products outbound.ProductCache
	notifier outbound.Notifier

	mu   sync.Mutex
	cart domain.Cart
}

func NewCartService(
	slot outbound.SlotStore,
	slotKey string,
	catalog outbound.Catalog,
	products outbound.ProductCache,
	notifier outbound.Notifier,
) *CartService {
	if slotKey == "" {
		slotKey = DefaultSlotKey
	}
	return &CartService{
		slot:     slot,
		slotKey:  slotKey,
		catalog:  catalog,
		products: products,
		notifier: notifier,
		cart:     domain.Cart{},
	}
}

// Load reads the persisted cart once. Missing or malformed data yields an
// empty cart; the returned int is the number of restored line items.
func (s *CartService) Load(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = domain.Cart{}

	raw, ok, err := s.slot.Get(ctx, s.slotKey)
	if err != nil {
		log.Printf("[cart] load slot=%q failed, starting empty: %v", s.slotKey, err)
		return 0
	}
	if !ok {
		return 0
	}

	c, err := domain.DecodeCart(raw)
	if err != nil {
		log.Printf("[cart] slot=%q holds malformed data, starting empty: %v", s.slotKey, err)
		return 0
	}

	s.cart = c
	return len(c)
}

func (s *CartService) Cart(_ context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *CartService) AddProduct(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.cart.Find(productID); ok {
		s.updateAmount(ctx, productID, existing.Amount+1)
		return
	}

	product, err := s.product(ctx, productID)
	if err != nil {
		s.fail(ctx, domain.KindAddFailed, productID, err)
		return
	}

	next := s.cart.Append(domain.NewLineItem(product))
	if err := s.commit(ctx, next); err != nil {
		s.fail(ctx, domain.KindAddFailed, productID, err)
	}
}

func (s *CartService) RemoveProduct(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Contains(productID) {
		s.fail(ctx, domain.KindRemoveFailed, productID, domain.ErrNotFound)
		return
	}

	if err := s.commit(ctx, s.cart.Without(productID)); err != nil {
		s.fail(ctx, domain.KindRemoveFailed, productID, err)
	}
}

func (s *CartService) UpdateProductAmount(ctx context.Context, req inbound.UpdateProductAmount) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateAmount(ctx, req.ProductID, req.Amount)
}

// Apply dispatches an asynchronously delivered command to the matching operation.
func (s *CartService) Apply(ctx context.Context, cmd domain.Command) {
	switch cmd.Op {
	case domain.OpAdd:
		s.AddProduct(ctx, cmd.ProductID)
	case domain.OpRemove:
		s.RemoveProduct(ctx, cmd.ProductID)
	case domain.OpUpdate:
		s.UpdateProductAmount(ctx, inbound.UpdateProductAmount{ProductID: cmd.ProductID, Amount: cmd.Amount})
	default:
		log.Printf("[cart] ignoring command with unknown op=%q product_id=%d", cmd.Op, cmd.ProductID)
	}
}

// updateAmount requires s.mu.
func (s *CartService) updateAmount(ctx context.Context, productID, amount int) {
	if amount <= 0 {
		return
	}

	if !s.cart.Contains(productID) {
		s.fail(ctx, domain.KindUpdateFailed, productID, domain.ErrNotFound)
		return
	}

	stock, err := s.catalog.GetStock(ctx, productID)
	if err != nil {
		s.fail(ctx, domain.KindUpdateFailed, productID, fmt.Errorf("get stock: %w", err))
		return
	}

	if amount > stock.Amount {
		s.fail(ctx, domain.KindOutOfStock, productID,
			fmt.Errorf("requested %d, available %d", amount, stock.Amount))
		return
	}

	if err := s.commit(ctx, s.cart.WithAmount(productID, amount)); err != nil {
		s.fail(ctx, domain.KindUpdateFailed, productID, err)
	}
}

// product always asks the catalog so a new line item carries current details.
// The cache only remembers the last successful fetch.
func (s *CartService) product(ctx context.Context, productID int) (domain.Product, error) {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	if p.ID != productID {
		return domain.Product{}, fmt.Errorf("get product: catalog returned id=%d for %d", p.ID, productID)
	}

	if prev, ok := s.products.Get(ctx, productID); ok && prev.Price != p.Price {
		log.Printf("[cart] product_id=%d price changed %v -> %v", productID, prev.Price, p.Price)
	}
	s.products.Set(ctx, p)
	return p, nil
}

// commit requires s.mu.
func (s *CartService) commit(ctx context.Context, next domain.Cart) error {
	b, err := domain.EncodeCart(next)
	if err != nil {
		return err
	}
	if err := s.slot.Set(ctx, s.slotKey, b); err != nil {
		return fmt.Errorf("persist slot: %w", err)
	}
	s.cart = next
	return nil
}

func (s *CartService) fail(ctx context.Context, kind domain.NotificationKind, productID int, err error) {
	log.Printf("[cart] %s product_id=%d: %v", kind, productID, err)
	s.notifier.Notify(ctx, domain.NewNotification(kind, productID))
}

var _ inbound.CartUseCase = (*CartService)(nil)
