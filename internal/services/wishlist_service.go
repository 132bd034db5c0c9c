package services

import (
	"errors"
	"log"

	"freshcart/internal/models"
	"freshcart/internal/repositories"
)

// WishlistService handles saving products for later and records WISHLIST
// activities for the recommendation scorer.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
	activities   *ActivityService
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository, activities *ActivityService) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		activities:   activities,
	}
}

// Add saves a product to the user's wishlist. Saving a product twice is a
// no-op rather than an error so the UI toggle can call it blindly.
func (s *WishlistService) Add(userID, productID string) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return err
	}

	item := &models.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.wishlistRepo.Add(item); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil
		}
		return err
	}

	if err := s.activities.Track(userID, productID, models.ActionWishlist); err != nil {
		log.Printf("Warning: failed to track wishlist activity for user %s: %v", userID, err)
	}
	return nil
}

// Remove drops a product from the user's wishlist.
func (s *WishlistService) Remove(userID, productID string) error {
	return s.wishlistRepo.Remove(userID, productID)
}

// List resolves the user's wishlist to live catalog products. Entries whose
// product has since been deleted are skipped, mirroring the cart's tolerance
// for missing catalog records.
func (s *WishlistService) List(userID string) ([]models.Product, error) {
	items, err := s.wishlistRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}
