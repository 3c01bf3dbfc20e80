package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fooday/internal/domain"
)

func seedItem(name, description string, price float64, category string, popular bool) domain.MenuItem {
	return domain.MenuItem{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		IsAvailable: true,
		IsPopular:   popular,
	}
}

func seedRestaurant(name, cuisine string, rating float64, deliveryTime string, deliveryFee float64, address string, active bool, items []domain.MenuItem) domain.Restaurant {
	return domain.Restaurant{
		ID:           uuid.NewString(),
		Name:         name,
		Cuisine:      cuisine,
		Rating:       rating,
		DeliveryTime: deliveryTime,
		DeliveryFee:  deliveryFee,
		Address:      address,
		IsActive:     active,
		MenuItems:    items,
		CreatedAt:    time.Now(),
	}
}

// Seed loads the demo catalog: five restaurants, two users and two historic
// orders for the first user.
func Seed(ctx context.Context, store *MemoryStore) error {
	burgers := []domain.MenuItem{
		seedItem("Classic Burger", "Beef patty, lettuce, tomato, onion, pickles", 12.99, "Burgers", true),
		seedItem("Cheese Burger", "Double cheddar, special sauce, caramelized onions", 14.99, "Burgers", false),
		seedItem("BBQ Bacon Burger", "Smoked bacon, BBQ sauce, crispy onions", 16.99, "Burgers", true),
		seedItem("Veggie Burger", "Plant-based patty, avocado, sprouts", 13.99, "Burgers", false),
		seedItem("French Fries", "Crispy golden fries with sea salt", 4.99, "Sides", true),
		seedItem("Onion Rings", "Beer-battered, crispy onion rings", 5.99, "Sides", false),
		seedItem("Chocolate Shake", "Thick creamy chocolate milkshake", 6.99, "Drinks", false),
		seedItem("Lemonade", "Fresh squeezed with mint", 3.99, "Drinks", false),
	}
	pizzas := []domain.MenuItem{
		seedItem("Margherita", "San Marzano tomato, fresh mozzarella, basil", 15.99, "Pizzas", true),
		seedItem("Pepperoni", "Classic pepperoni with mozzarella", 17.99, "Pizzas", true),
		seedItem("BBQ Chicken", "Grilled chicken, BBQ sauce, red onion, cilantro", 18.99, "Pizzas", false),
		seedItem("Veggie Supreme", "Bell peppers, mushrooms, olives, artichokes", 16.99, "Pizzas", false),
		seedItem("Garlic Bread", "Toasted sourdough with garlic butter and herbs", 6.99, "Sides", false),
		seedItem("Caesar Salad", "Romaine, parmesan, croutons, caesar dressing", 9.99, "Salads", false),
		seedItem("Tiramisu", "Classic Italian dessert with espresso", 7.99, "Desserts", false),
		seedItem("Sparkling Water", "Italian sparkling mineral water", 2.99, "Drinks", false),
	}
	sushi := []domain.MenuItem{
		seedItem("Salmon Roll", "Fresh salmon, avocado, cucumber", 14.99, "Rolls", true),
		seedItem("Tuna Nigiri (2pc)", "Premium bluefin tuna over seasoned rice", 12.99, "Nigiri", false),
		seedItem("Dragon Roll", "Shrimp tempura, avocado on top, eel sauce", 18.99, "Rolls", true),
		seedItem("Spicy Tuna Roll", "Tuna, sriracha mayo, cucumber", 13.99, "Rolls", false),
		seedItem("Miso Soup", "Traditional dashi broth with tofu and seaweed", 3.99, "Soups", false),
		seedItem("Edamame", "Steamed and lightly salted soybeans", 4.99, "Appetizers", true),
		seedItem("Green Tea Ice Cream", "Matcha soft serve", 5.99, "Desserts", false),
		seedItem("Sake (carafe)", "Premium warm sake", 12.99, "Drinks", false),
	}
	tacos := []domain.MenuItem{
		seedItem("Carne Asada Tacos (3)", "Grilled beef, salsa verde, cilantro, onion", 13.99, "Tacos", true),
		seedItem("Fish Tacos (3)", "Baja-style with slaw and chipotle crema", 14.99, "Tacos", false),
		seedItem("Veggie Tacos (3)", "Roasted peppers, black beans, pico, guac", 11.99, "Tacos", false),
		seedItem("Chicken Burrito", "Grilled chicken, rice, beans, cheese, sour cream", 12.99, "Burritos", true),
		seedItem("Guacamole & Chips", "Fresh avocado with house-made tortilla chips", 7.99, "Sides", true),
		seedItem("Elote", "Grilled corn, cotija cheese, chili, lime", 6.99, "Sides", false),
		seedItem("Horchata", "Rice milk with cinnamon and vanilla", 3.99, "Drinks", false),
		seedItem("Churros", "Crispy with cinnamon sugar and chocolate dip", 5.99, "Desserts", false),
	}
	healthy := []domain.MenuItem{
		seedItem("Kale Caesar", "Kale, parmesan, croutons, anchovy dressing", 13.99, "Salads", true),
		seedItem("Quinoa Power Bowl", "Quinoa, roasted veggies, tahini, feta", 14.99, "Bowls", true),
		seedItem("Acai Bowl", "Acai base, granola, fresh berries, honey", 12.99, "Bowls", false),
		seedItem("Avocado Toast", "Sourdough, smashed avocado, poached egg", 11.99, "Toast", false),
		seedItem("Green Smoothie", "Spinach, banana, mango, almond milk", 7.99, "Drinks", true),
		seedItem("Coconut Water", "Fresh young coconut water", 4.99, "Drinks", false),
	}

	restaurants := []domain.Restaurant{
		seedRestaurant("Burger Republic", "American • Burgers", 4.7, "20-30 min", 2.99, "123 Main St", true, burgers),
		seedRestaurant("Pizza Napoli", "Italian • Pizza", 4.8, "25-40 min", 0.00, "456 Oak Ave", true, pizzas),
		seedRestaurant("Sakura Sushi", "Japanese • Sushi", 4.9, "30-45 min", 3.99, "789 Cherry Blvd", true, sushi),
		seedRestaurant("Taco Loco", "Mexican • Tacos", 4.5, "15-25 min", 1.99, "321 Pepper Lane", true, tacos),
		seedRestaurant("The Green Bowl", "Healthy • Salads", 4.6, "20-30 min", 2.49, "555 Wellness Way", false, healthy),
	}
	for i := range restaurants {
		if err := store.InsertRestaurant(ctx, &restaurants[i]); err != nil {
			return err
		}
	}

	alex := domain.User{
		ID:        uuid.NewString(),
		Name:      "Alex Johnson",
		Email:     "alex@example.com",
		Phone:     "+1 555-0101",
		Address:   "42 Maple Street, New York, NY 10001",
		CreatedAt: time.Now(),
	}
	admin := domain.User{
		ID:        uuid.NewString(),
		Name:      "Admin User",
		Email:     "admin@foodapp.com",
		Phone:     "+1 555-0000",
		Address:   "HQ",
		IsAdmin:   true,
		CreatedAt: time.Now(),
	}
	if err := store.InsertUser(ctx, &alex); err != nil {
		return err
	}
	if err := store.InsertUser(ctx, &admin); err != nil {
		return err
	}

	burgerRepublic := restaurants[0]
	pizzaNapoli := restaurants[1]

	deliveredItems := []domain.CartItem{
		{ID: uuid.NewString(), MenuItem: burgerRepublic.MenuItems[0], Quantity: 2, RestaurantID: burgerRepublic.ID, RestaurantName: burgerRepublic.Name},
		{ID: uuid.NewString(), MenuItem: burgerRepublic.MenuItems[4], Quantity: 1, RestaurantID: burgerRepublic.ID, RestaurantName: burgerRepublic.Name},
	}
	deliveredSubtotal := 0.0
	for _, item := range deliveredItems {
		deliveredSubtotal += item.Subtotal()
	}
	threeDaysAgo := time.Now().AddDate(0, 0, -3)

	orders := []domain.Order{
		{
			ID:                uuid.NewString(),
			UserID:            alex.ID,
			RestaurantID:      burgerRepublic.ID,
			RestaurantName:    burgerRepublic.Name,
			Items:             deliveredItems,
			Status:            domain.StatusDelivered,
			CreatedAt:         threeDaysAgo,
			EstimatedDelivery: threeDaysAgo,
			DeliveryAddress:   alex.Address,
			Subtotal:          deliveredSubtotal,
			DeliveryFee:       burgerRepublic.DeliveryFee,
			Total:             deliveredSubtotal + burgerRepublic.DeliveryFee,
			PaymentMethod:     "Credit Card",
		},
		{
			ID:             uuid.NewString(),
			UserID:         alex.ID,
			RestaurantID:   pizzaNapoli.ID,
			RestaurantName: pizzaNapoli.Name,
			Items: []domain.CartItem{
				{ID: uuid.NewString(), MenuItem: pizzaNapoli.MenuItems[0], Quantity: 1, RestaurantID: pizzaNapoli.ID, RestaurantName: pizzaNapoli.Name},
			},
			Status:            domain.StatusPreparing,
			CreatedAt:         time.Now(),
			EstimatedDelivery: time.Now().Add(30 * time.Minute),
			DeliveryAddress:   alex.Address,
			Subtotal:          15.99,
			DeliveryFee:       0,
			Total:             15.99,
			PaymentMethod:     "Apple Pay",
		},
	}
	// Insert oldest first; InsertOrder prepends, keeping newest at the head.
	for i := range orders {
		if err := store.InsertOrder(ctx, &orders[i]); err != nil {
			return err
		}
	}
	return nil
}
