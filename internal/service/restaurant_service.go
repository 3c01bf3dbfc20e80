package service

import (
	"context"
	"strings"

	"fooday/internal/domain"
)

type RestaurantService struct {
	restaurants RestaurantRepository
}

func NewRestaurantService(restaurants RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurants: restaurants}
}

// Browse is the customer-facing listing: active restaurants only, optionally
// filtered by a case-insensitive match on name or cuisine.
func (s *RestaurantService) Browse(ctx context.Context, search string) ([]domain.Restaurant, error) {
	all, err := s.restaurants.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	matched := []domain.Restaurant{}
	for _, restaurant := range all {
		if !restaurant.IsActive {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(restaurant.Name), needle) &&
			!strings.Contains(strings.ToLower(restaurant.Cuisine), needle) {
			continue
		}
		matched = append(matched, restaurant)
	}
	return matched, nil
}

func (s *RestaurantService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.restaurants.GetRestaurant(ctx, id)
}

// All includes inactive restaurants; administrative visibility.
func (s *RestaurantService) All(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurants.ListRestaurants(ctx)
}

// ToggleActive flips the active flag exactly once per call.
func (s *RestaurantService) ToggleActive(ctx context.Context, id string) (bool, error) {
	return s.restaurants.ToggleRestaurantActive(ctx, id)
}
