package services

import (
	"errors"
	"fmt"
	"sort"

	"freshcart/internal/models"
	"freshcart/internal/repositories"
)

// RecommendationConfig carries the tunable scoring parameters. The weight
// table and window size are configuration rather than literals so they can be
// re-tuned without a code change.
type RecommendationConfig struct {
	// Weights maps each activity action to its score contribution.
	Weights map[models.ActivityAction]int
	// HistoryWindow is how many of the user's newest activities are scored;
	// older interactions are excluded entirely, not down-weighted.
	HistoryWindow int
	// SeedCount is how many top-scored products seed the category search.
	SeedCount int
	// MaxResults caps the returned recommendation list.
	MaxResults int
	// MinPrimary is the threshold below which the primary set gets padded
	// with globally top-rated products.
	MinPrimary int
}

// DefaultRecommendationConfig returns the stock parameter set.
func DefaultRecommendationConfig() RecommendationConfig {
	return RecommendationConfig{
		Weights: map[models.ActivityAction]int{
			models.ActionView:      1,
			models.ActionWishlist:  2,
			models.ActionAddToCart: 3,
			models.ActionPurchase:  5,
		},
		HistoryWindow: 20,
		SeedCount:     5,
		MaxResults:    10,
		MinPrimary:    4,
	}
}

// RecommendationService ranks catalog products for a user from their recent
// interaction history, degrading to a global best-seller list when there is
// no personalization signal. Unlike the cart reconciler it does not tolerate
// store failures: recommendations are non-critical, so a total failure is
// acceptable and partial results are not produced on error.
type RecommendationService struct {
	activityRepo repositories.ActivityRepository
	productRepo  repositories.ProductRepository
	cfg          RecommendationConfig
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(activityRepo repositories.ActivityRepository, productRepo repositories.ProductRepository, cfg RecommendationConfig) *RecommendationService {
	return &RecommendationService{
		activityRepo: activityRepo,
		productRepo:  productRepo,
		cfg:          cfg,
	}
}

// WithConfig returns a copy of the service using different scoring
// parameters over the same repositories.
func (s *RecommendationService) WithConfig(cfg RecommendationConfig) *RecommendationService {
	return &RecommendationService{
		activityRepo: s.activityRepo,
		productRepo:  s.productRepo,
		cfg:          cfg,
	}
}

// RecommendForUser returns the ranked recommendation list for the given user.
// An empty userID is the anonymous path and yields the cold-start list.
func (s *RecommendationService) RecommendForUser(userID string) ([]models.Product, error) {
	if userID == "" {
		return s.coldStart()
	}

	activities, err := s.activityRepo.RecentByUser(userID, s.cfg.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity history: %w", err)
	}
	if len(activities) == 0 {
		return s.coldStart()
	}

	seedIDs := s.rankSeeds(activities)
	categories, err := s.seedCategories(seedIDs)
	if err != nil {
		return nil, err
	}

	primary, err := s.productRepo.ByCategories(categories, seedIDs, s.cfg.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to query category recommendations: %w", err)
	}
	if len(primary) >= s.cfg.MinPrimary {
		return primary, nil
	}
	return s.pad(primary, seedIDs)
}

// coldStart returns the globally top-selling products.
func (s *RecommendationService) coldStart() ([]models.Product, error) {
	products, err := s.productRepo.TopSelling(s.cfg.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to load top sellers: %w", err)
	}
	return products, nil
}

// rankSeeds accumulates a per-product score by summing activity weights and
// returns the top-scored product IDs. Products never seen in the window have
// score zero and do not participate; among equal scores the product seen
// more recently wins, which keeps the ranking stable across calls.
func (s *RecommendationService) rankSeeds(activities []models.UserActivity) []string {
	scores := make(map[string]int)
	order := make([]string, 0, len(activities))
	for _, a := range activities { // activities arrive newest-first
		if _, seen := scores[a.ProductID]; !seen {
			order = append(order, a.ProductID)
		}
		scores[a.ProductID] += a.Weight
	}

	candidates := make([]string, 0, len(order))
	for _, id := range order {
		if scores[id] > 0 {
			candidates = append(candidates, id)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return scores[candidates[i]] > scores[candidates[j]]
	})

	if len(candidates) > s.cfg.SeedCount {
		candidates = candidates[:s.cfg.SeedCount]
	}
	return candidates
}

// seedCategories resolves the distinct category set of the seed products.
// Seeds whose catalog record has since been deleted are skipped; any other
// store failure aborts.
func (s *RecommendationService) seedCategories(seedIDs []string) ([]string, error) {
	seen := make(map[string]bool)
	categories := make([]string, 0, len(seedIDs))
	for _, id := range seedIDs {
		product, err := s.productRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to resolve seed product %s: %w", id, err)
		}
		if !seen[product.Category] {
			seen[product.Category] = true
			categories = append(categories, product.Category)
		}
	}
	return categories, nil
}

// pad fills a thin primary set with globally top-rated products up to the
// result cap, never duplicating a primary entry or re-introducing a seed.
func (s *RecommendationService) pad(primary []models.Product, seedIDs []string) ([]models.Product, error) {
	fillers, err := s.productRepo.TopRated(s.cfg.MaxResults, seedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load padding products: %w", err)
	}

	present := make(map[string]bool, len(primary))
	for _, p := range primary {
		present[p.ID] = true
	}

	result := primary
	for _, p := range fillers {
		if len(result) >= s.cfg.MaxResults {
			break
		}
		if present[p.ID] {
			continue
		}
		present[p.ID] = true
		result = append(result, p)
	}
	return result, nil
}
