package service

import (
	"context"
	"sync"

	"github.com/petdailykit/catalog/internal/domain"
)

// aggregate assembles the denormalized product view. Sizes, variations, and
// the price range are fetched sequentially; colors are fetched concurrently,
// one query per size. The result is built fresh on every call; a failure of
// any fetch fails the whole aggregation, never a partial document.
func (s *CatalogService) aggregate(ctx context.Context, p *domain.Product) (*domain.ProductAggregate, error) {
	sizes, err := s.variants.SizesByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	variations, err := s.variants.VariationsByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	colorsBySize, err := s.fetchColorsBySize(ctx, p.ID, sizes)
	if err != nil {
		return nil, err
	}

	priceRange, err := s.variants.PriceRangeByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return buildAggregate(p, sizes, colorsBySize, variations, priceRange), nil
}

// fetchColorsBySize runs one color query per size concurrently. Each
// goroutine writes into its own slot, so colorsBySize[i] always belongs to
// sizes[i] no matter which query finishes first. The first error is
// surfaced immediately; in-flight siblings run to completion and their
// results are discarded.
func (s *CatalogService) fetchColorsBySize(ctx context.Context, productID int64, sizes []domain.Size) ([][]domain.Color, error) {
	colorsBySize := make([][]domain.Color, len(sizes))
	errCh := make(chan error, len(sizes))

	var wg sync.WaitGroup
	for i, size := range sizes {
		wg.Add(1)
		go func(slot int, sizeID int64) {
			defer wg.Done()
			colors, err := s.variants.ColorsByProductAndSize(ctx, productID, sizeID)
			if err != nil {
				errCh <- err
				return
			}
			colorsBySize[slot] = colors
		}(i, size.ID)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case err := <-errCh:
		return nil, err
	case <-done:
	}

	// Errors are sent before wg.Done, so anything that failed is buffered
	// by the time done closes.
	select {
	case err := <-errCh:
		return nil, err
	default:
	}

	return colorsBySize, nil
}

// buildAggregate merges the four fetched row sets into the nested document.
// It is pure; all I/O happens before it runs.
func buildAggregate(
	p *domain.Product,
	sizes []domain.Size,
	colorsBySize [][]domain.Color,
	variations []domain.Variation,
	priceRange domain.PriceRange,
) *domain.ProductAggregate {
	agg := &domain.ProductAggregate{
		Product:       *p,
		PriceMin:      priceRange.Min,
		PriceMax:      priceRange.Max,
		GalleryImages: []string{},
		Sizes:         make([]domain.SizeVariants, 0, len(sizes)),
	}

	for i, size := range sizes {
		colors := colorsBySize[i]
		agg.Sizes = append(agg.Sizes, domain.SizeVariants{
			Size:   size.Label,
			Colors: correlate(size.ID, colors, variations),
		})
		// Gallery preserves retrieval order, duplicates included.
		for _, c := range colors {
			agg.GalleryImages = append(agg.GalleryImages, c.ImageURL)
		}
	}

	// The main image comes from the first color of the first size only.
	if len(sizes) > 0 && len(colorsBySize[0]) > 0 {
		img := colorsBySize[0][0].ImageURL
		agg.MainImage = &img
	}

	return agg
}

// correlate joins one size's colors with the product's variation rows.
// First matching variation wins. A color with no variation keeps a nil
// price and an out-of-stock stock value; a price is never fabricated.
func correlate(sizeID int64, colors []domain.Color, variations []domain.Variation) []domain.ColorOffer {
	offers := make([]domain.ColorOffer, 0, len(colors))
	for _, c := range colors {
		offer := domain.ColorOffer{
			Color:    c.Label,
			ImageURL: c.ImageURL,
		}
		for _, v := range variations {
			if v.SizeID == sizeID && v.ColorID == c.ID {
				price := v.Price
				offer.Price = &price
				offer.Stock = domain.InStock(v.Stock)
				break
			}
		}
		offers = append(offers, offer)
	}
	return offers
}
