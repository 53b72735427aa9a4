package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/pkg/metrics"
)

type CartService struct {
	Cart     CartStore
	Products ProductStore
	Events   Publisher
}

type cartKey struct {
	user, product, variant uuid.UUID
}

func parseCartKey(userID, productID, variantID string) (cartKey, error) {
	var k cartKey
	var err error
	if k.user, err = parseID("user id", userID); err != nil {
		return k, err
	}
	if k.product, err = parseID("product id", productID); err != nil {
		return k, err
	}
	if k.variant, err = parseID("variant id", variantID); err != nil {
		return k, err
	}
	return k, nil
}

// Add puts one unit of the variant into the user's cart, creating the line on
// first add and incrementing it afterwards.
func (s *CartService) Add(ctx context.Context, userID, productID, variantID string) (domain.AddResult, error) {
	k, err := parseCartKey(userID, productID, variantID)
	if err != nil {
		return domain.AddResult{}, err
	}

	p, err := s.Products.GetProduct(ctx, k.product)
	if err != nil {
		return domain.AddResult{}, storeErr("product", err)
	}
	if _, ok := p.VariantByID(k.variant); !ok {
		return domain.AddResult{}, fmt.Errorf("variant %s of product %s: %w", k.variant, k.product, ErrNotFound)
	}

	res, err := s.Cart.AddCartLine(ctx, k.user, k.product, k.variant)
	if err != nil {
		return domain.AddResult{}, storeErr("user", err)
	}
	metrics.CartMutations.WithLabelValues("add", res.Outcome.String()).Inc()

	publish(ctx, s.Events, mykafka.TopicCart, k.user.String(), "cart_item_added", map[string]any{
		"user_id":    k.user,
		"product_id": k.product,
		"variant_id": k.variant,
		"quantity":   res.Quantity,
		"outcome":    res.Outcome.String(),
	})
	return res, nil
}

// Remove drops the line for the exact (product, variant) pair. Removing a
// line that is not in the cart succeeds and reports false.
func (s *CartService) Remove(ctx context.Context, userID, productID, variantID string) (bool, error) {
	k, err := parseCartKey(userID, productID, variantID)
	if err != nil {
		return false, err
	}

	removed, err := s.Cart.RemoveCartLine(ctx, k.user, k.product, k.variant)
	if err != nil {
		return false, storeErr("cart", err)
	}

	outcome := "noop"
	if removed {
		outcome = "removed"
		publish(ctx, s.Events, mykafka.TopicCart, k.user.String(), "cart_item_removed", map[string]any{
			"user_id":    k.user,
			"product_id": k.product,
			"variant_id": k.variant,
		})
	}
	metrics.CartMutations.WithLabelValues("remove", outcome).Inc()
	return removed, nil
}

func (s *CartService) View(ctx context.Context, userID string) ([]domain.CartLine, error) {
	id, err := parseID("user id", userID)
	if err != nil {
		return nil, err
	}
	lines, err := s.Cart.CartLines(ctx, id)
	if err != nil {
		return nil, storeErr("cart", err)
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, nil
}
