package service

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/koiexpress/shipping-gateway/internal/models"
	"github.com/koiexpress/shipping-gateway/pkg/format"
	"github.com/koiexpress/shipping-gateway/pkg/logger"
)

// PricingService serves the public price tables. No session is required;
// the backend exposes these collections without a token.
type PricingService struct {
	backend Backend
	logger  logger.Logger
}

// NewPricingService creates a new PricingService
func NewPricingService(backend Backend, logger logger.Logger) *PricingService {
	return &PricingService{
		backend: backend,
		logger:  logger,
	}
}

// DistanceTierView is one row of the distance price table
type DistanceTierView struct {
	ID            int64   `json:"id"`
	RangeDistance float64 `json:"rangeDistance"`
	Price         string  `json:"price"`
}

// BoxTypeView is one row of the box catalog table
type BoxTypeView struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	MaxVolume float64 `json:"maxVolume"`
	Price     string  `json:"price"`
}

// PriceTables bundles both public tables for the pricing page
type PriceTables struct {
	Distances []DistanceTierView `json:"distances"`
	Boxes     []BoxTypeView      `json:"boxes"`
}

// Tables fetches distance tiers and box types concurrently. Tiers come back
// sorted by range so the table reads shortest to longest.
func (s *PricingService) Tables(ctx context.Context) (*PriceTables, error) {
	var (
		distances []models.Distance
		boxes     []models.Box
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		distances, err = s.backend.Distances(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		boxes, err = s.backend.Boxes(gctx, "")
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(distances, func(i, j int) bool {
		return distances[i].RangeDistance < distances[j].RangeDistance
	})

	tables := &PriceTables{
		Distances: make([]DistanceTierView, 0, len(distances)),
		Boxes:     make([]BoxTypeView, 0, len(boxes)),
	}

	for _, d := range distances {
		tables.Distances = append(tables.Distances, DistanceTierView{
			ID:            d.ID,
			RangeDistance: d.RangeDistance,
			Price:         format.Price(d.Price),
		})
	}

	for _, b := range boxes {
		tables.Boxes = append(tables.Boxes, BoxTypeView{
			ID:        b.ID,
			Name:      b.Name,
			MaxVolume: b.MaxVolume,
			Price:     format.Price(b.Price),
		})
	}

	return tables, nil
}
