package services_test

import (
	"fmt"
	"testing"

	"freshcart/internal/models"
	"freshcart/internal/repositories"
	"freshcart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockActivityRepository is a testify mock of repositories.ActivityRepository
// for the store-failure cases the in-memory mock cannot produce.
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(activity *models.UserActivity) error {
	args := m.Called(activity)
	return args.Error(0)
}

func (m *MockActivityRepository) RecentByUser(userID string, limit int) ([]models.UserActivity, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserActivity), args.Error(1)
}

func newRecommendationFixture(t *testing.T) (*services.RecommendationService, *services.ActivityService, *repositories.MockProductRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	activityRepo := repositories.NewMockActivityRepository()
	cfg := services.DefaultRecommendationConfig()
	activities := services.NewActivityService(activityRepo, cfg.Weights)
	return services.NewRecommendationService(activityRepo, productRepo, cfg), activities, productRepo
}

func TestRecommendationService_ColdStartAnonymous(t *testing.T) {
	svc, _, productRepo := newRecommendationFixture(t)
	for i := 0; i < 15; i++ {
		require.NoError(t, productRepo.Create(&models.Product{
			ID:       fmt.Sprintf("p%02d", i),
			Title:    fmt.Sprintf("Product %02d", i),
			Category: "misc",
			Price:    1,
			Sold:     i * 10,
		}))
	}

	products, err := svc.RecommendForUser("")
	require.NoError(t, err)
	require.Len(t, products, 10)
	// Top sellers, sold descending.
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].Sold, products[i].Sold)
	}
	assert.Equal(t, "p14", products[0].ID)
}

func TestRecommendationService_ColdStartNoHistory(t *testing.T) {
	svc, _, productRepo := newRecommendationFixture(t)
	require.NoError(t, productRepo.Create(&models.Product{ID: "p1", Title: "Only Product", Category: "misc", Price: 1, Sold: 3}))

	products, err := svc.RecommendForUser("user-with-no-history")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestRecommendationService_ScoringRanksByAccumulatedWeight(t *testing.T) {
	svc, activities, productRepo := newRecommendationFixture(t)

	// P1 in category A, P2 in category B. P1 accumulates VIEW(1)+PURCHASE(5)=6,
	// P2 WISHLIST(2)=2, so with a single seed slot category A must win.
	require.NoError(t, productRepo.Create(&models.Product{ID: "p1", Title: "Espresso Beans", Category: "cat-a", Price: 1}))
	require.NoError(t, productRepo.Create(&models.Product{ID: "p2", Title: "Green Tea", Category: "cat-b", Price: 1}))
	require.NoError(t, productRepo.Create(&models.Product{ID: "a1", Title: "Filter Coffee", Category: "cat-a", Price: 1, RatingsAverage: 4}))
	require.NoError(t, productRepo.Create(&models.Product{ID: "b1", Title: "Oolong", Category: "cat-b", Price: 1, RatingsAverage: 5}))

	require.NoError(t, activities.Track("user-1", "p1", models.ActionView))
	require.NoError(t, activities.Track("user-1", "p1", models.ActionPurchase))
	require.NoError(t, activities.Track("user-1", "p2", models.ActionWishlist))

	cfg := services.DefaultRecommendationConfig()
	cfg.SeedCount = 1
	cfg.MinPrimary = 1 // keep padding out of this test

	products, err := svc.WithConfig(cfg).RecommendForUser("user-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "a1", products[0].ID, "the higher-scored product's category must seed the results")
}

func TestRecommendationService_SeedExclusion(t *testing.T) {
	svc, activities, productRepo := newRecommendationFixture(t)
	require.NoError(t, productRepo.Create(&models.Product{ID: "seed", Title: "Seed Product", Category: "cat-a", Price: 1}))
	for i := 0; i < 12; i++ {
		require.NoError(t, productRepo.Create(&models.Product{
			ID:             fmt.Sprintf("a%02d", i),
			Title:          fmt.Sprintf("Alt %02d", i),
			Category:       "cat-a",
			Price:          1,
			RatingsAverage: float64(i%5) + 0.1,
		}))
	}

	require.NoError(t, activities.Track("user-1", "seed", models.ActionPurchase))

	products, err := svc.RecommendForUser("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, products)
	assert.Len(t, products, 10)
	for _, p := range products {
		assert.NotEqual(t, "seed", p.ID, "seed products must never appear in the result")
	}
}

func TestRecommendationService_PadsThinPrimarySet(t *testing.T) {
	svc, activities, productRepo := newRecommendationFixture(t)

	// The seed category yields only 2 primary candidates, below the
	// padding threshold of 4.
	require.NoError(t, productRepo.Create(&models.Product{ID: "seed", Title: "Seed", Category: "niche", Price: 1}))
	require.NoError(t, productRepo.Create(&models.Product{ID: "n1", Title: "Niche 1", Category: "niche", Price: 1, RatingsAverage: 3}))
	require.NoError(t, productRepo.Create(&models.Product{ID: "n2", Title: "Niche 2", Category: "niche", Price: 1, RatingsAverage: 2}))
	for i := 0; i < 9; i++ {
		require.NoError(t, productRepo.Create(&models.Product{
			ID:             fmt.Sprintf("f%02d", i),
			Title:          fmt.Sprintf("Filler %02d", i),
			Category:       "mainstream",
			Price:          1,
			RatingsAverage: 4.5,
			Sold:           i,
		}))
	}

	require.NoError(t, activities.Track("user-1", "seed", models.ActionPurchase))

	products, err := svc.RecommendForUser("user-1")
	require.NoError(t, err)
	assert.Len(t, products, 10, "2 primary + 8 padding")

	seen := make(map[string]bool)
	for _, p := range products {
		assert.False(t, seen[p.ID], "padding must never duplicate a product")
		seen[p.ID] = true
		assert.NotEqual(t, "seed", p.ID)
	}
	assert.True(t, seen["n1"])
	assert.True(t, seen["n2"])
}

func TestRecommendationService_ShortCatalogYieldsShortList(t *testing.T) {
	svc, activities, productRepo := newRecommendationFixture(t)
	require.NoError(t, productRepo.Create(&models.Product{ID: "seed", Title: "Seed", Category: "niche", Price: 1}))
	require.NoError(t, productRepo.Create(&models.Product{ID: "n1", Title: "Niche 1", Category: "niche", Price: 1, RatingsAverage: 3}))
	require.NoError(t, productRepo.Create(&models.Product{ID: "f1", Title: "Filler 1", Category: "other", Price: 1, RatingsAverage: 4}))

	require.NoError(t, activities.Track("user-1", "seed", models.ActionPurchase))

	products, err := svc.RecommendForUser("user-1")
	require.NoError(t, err)
	// 1 primary + 1 filler is all the catalog has; never pad with duplicates.
	assert.Len(t, products, 2)
}

func TestRecommendationService_EndToEndViewThenPurchase(t *testing.T) {
	svc, activities, productRepo := newRecommendationFixture(t)

	require.NoError(t, productRepo.Create(&models.Product{ID: "A", Title: "Road Bike", Category: "bikes", Price: 900}))
	require.NoError(t, productRepo.Create(&models.Product{ID: "B", Title: "Gravel Bike", Category: "bikes", Price: 1100, RatingsAverage: 4.8, Sold: 10}))
	require.NoError(t, productRepo.Create(&models.Product{ID: "C", Title: "City Bike", Category: "bikes", Price: 500, RatingsAverage: 4.8, Sold: 25}))
	require.NoError(t, productRepo.Create(&models.Product{ID: "D", Title: "Kids Bike", Category: "bikes", Price: 250, RatingsAverage: 3.9, Sold: 60}))

	require.NoError(t, activities.Track("user-1", "A", models.ActionView))
	require.NoError(t, activities.Track("user-1", "A", models.ActionPurchase))

	products, err := svc.RecommendForUser("user-1")
	require.NoError(t, err)
	require.Len(t, products, 3)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		assert.NotEqual(t, "A", p.ID, "the purchased product itself must not be recommended")
		assert.Equal(t, "bikes", p.Category)
		ids = append(ids, p.ID)
	}
	// Rating first (4.8 beats 3.9), sold second (C's 25 beats B's 10).
	assert.Equal(t, []string{"C", "B", "D"}, ids)
}

func TestRecommendationService_StoreErrorAborts(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	activityRepo := new(MockActivityRepository)
	cfg := services.DefaultRecommendationConfig()
	svc := services.NewRecommendationService(activityRepo, productRepo, cfg)

	activityRepo.On("RecentByUser", "user-1", cfg.HistoryWindow).
		Return(nil, fmt.Errorf("connection reset")).Once()

	_, err := svc.RecommendForUser("user-1")
	assert.Error(t, err, "no partial or fallback recommendations on store failure")
	activityRepo.AssertExpectations(t)
}
