package shoppinglist

import (
	"context"
	"fmt"

	"recipebook/internal/repository"
)

type CartAggregator interface {
	AggregateIngredients(ctx context.Context, userID int64) ([]repository.IngredientTotal, error)
}

type DocumentRenderer interface {
	Render(title string, lines []string, footer string) ([]byte, error)
}

type Service struct {
	cart     CartAggregator
	renderer DocumentRenderer
	siteName string
}

func NewService(cart CartAggregator, renderer DocumentRenderer, siteName string) *Service {
	return &Service{cart: cart, renderer: renderer, siteName: siteName}
}

// Lines returns the aggregated shopping list as display strings, one per
// distinct (ingredient, unit) pair, ordered by ingredient name.
func (s *Service) Lines(ctx context.Context, userID int64) ([]string, error) {
	totals, err := s.cart.AggregateIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]string, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, fmt.Sprintf("%s (%s) — %d", t.Name, t.MeasurementUnit, t.Total))
	}
	return lines, nil
}

// Document renders the shopping list as a PDF ready for download.
func (s *Service) Document(ctx context.Context, userID int64) ([]byte, error) {
	lines, err := s.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	footer := fmt.Sprintf("Generated by %s", s.siteName)
	return s.renderer.Render("Shopping list", lines, footer)
}
