package main

import (
	"testing"

	"freshcart/internal/models"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationConfigFromEnv(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("REC_WEIGHT_VIEW", 2)
	viper.Set("REC_WEIGHT_WISHLIST", 4)
	viper.Set("REC_WEIGHT_ADD_TO_CART", 6)
	viper.Set("REC_WEIGHT_PURCHASE", 10)
	viper.Set("REC_HISTORY_WINDOW", 50)
	viper.Set("REC_SEED_COUNT", 3)
	viper.Set("REC_MAX_RESULTS", 20)
	viper.Set("REC_MIN_PRIMARY", 5)

	cfg := recommendationConfigFromEnv()
	assert.Equal(t, 2, cfg.Weights[models.ActionView])
	assert.Equal(t, 4, cfg.Weights[models.ActionWishlist])
	assert.Equal(t, 6, cfg.Weights[models.ActionAddToCart])
	assert.Equal(t, 10, cfg.Weights[models.ActionPurchase])
	assert.Equal(t, 50, cfg.HistoryWindow)
	assert.Equal(t, 3, cfg.SeedCount)
	assert.Equal(t, 20, cfg.MaxResults)
	assert.Equal(t, 5, cfg.MinPrimary)
}

func TestOpenDatabaseDefaultsToSQLite(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("DATABASE_URL", "file::memory:?cache=shared")

	db, err := openDatabase()
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	sqlDB.Close()
}
