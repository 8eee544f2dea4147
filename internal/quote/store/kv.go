package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"bima/internal/kv"
	"bima/internal/quote/models"
	"bima/pkg/domain"
	"bima/pkg/platform/sentinel"
)

// KV stores each product's quotes as one JSON array under a per-product key.
// A single mutex serializes read-modify-write cycles; collections are small
// enough that whole-array rewrites stay cheap.
type KV struct {
	blobs  kv.Store
	logger *slog.Logger
	mu     sync.Mutex
}

func NewKV(blobs kv.Store, logger *slog.Logger) *KV {
	return &KV{blobs: blobs, logger: logger}
}

func collectionKey(product domain.ProductType) string {
	return "quotes:" + string(product)
}

// load decodes the product collection. A corrupt payload is logged and treated
// as empty rather than wedging the product line; the next write repairs it.
func (s *KV) load(ctx context.Context, product domain.ProductType) ([]*models.Quote, error) {
	raw, err := s.blobs.Get(ctx, collectionKey(product))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var quotes []*models.Quote
	if err := json.Unmarshal([]byte(raw), &quotes); err != nil {
		s.logger.Error("corrupt quote collection, resetting",
			"product", product,
			"error", err,
		)
		return nil, nil
	}
	return quotes, nil
}

func (s *KV) save(ctx context.Context, product domain.ProductType, quotes []*models.Quote) error {
	raw, err := json.Marshal(quotes)
	if err != nil {
		return err
	}
	return s.blobs.Set(ctx, collectionKey(product), string(raw))
}

func (s *KV) List(ctx context.Context, product domain.ProductType) ([]*models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, product)
}

func (s *KV) FindByID(ctx context.Context, product domain.ProductType, id domain.QuoteID) (*models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.load(ctx, product)
	if err != nil {
		return nil, err
	}
	for _, q := range quotes {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *KV) Insert(ctx context.Context, quote *models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.load(ctx, quote.Product)
	if err != nil {
		return err
	}
	for _, q := range quotes {
		if q.ID == quote.ID {
			return sentinel.ErrConflict
		}
	}
	return s.save(ctx, quote.Product, append(quotes, quote))
}

func (s *KV) Execute(ctx context.Context, product domain.ProductType, id domain.QuoteID,
	validate func(*models.Quote) error, mutate func(*models.Quote)) (*models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.load(ctx, product)
	if err != nil {
		return nil, err
	}
	for _, q := range quotes {
		if q.ID != id {
			continue
		}
		if err := validate(q); err != nil {
			return nil, err
		}
		mutate(q)
		if err := s.save(ctx, product, quotes); err != nil {
			return nil, err
		}
		return q, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *KV) Delete(ctx context.Context, product domain.ProductType, id domain.QuoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.load(ctx, product)
	if err != nil {
		return err
	}
	for i, q := range quotes {
		if q.ID == id {
			return s.save(ctx, product, append(quotes[:i], quotes[i+1:]...))
		}
	}
	return sentinel.ErrNotFound
}
