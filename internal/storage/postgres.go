package storage

import (
	"context"
	"database/sql"
	"fmt"

	"fooday/internal/domain"
)

// PostgresRepository backs the authoritative catalog collections: users,
// restaurants and orders.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			cuisine TEXT NOT NULL DEFAULT '',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			delivery_time TEXT NOT NULL DEFAULT '',
			delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			address TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL REFERENCES restaurants(id),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			is_popular BOOLEAN NOT NULL DEFAULT FALSE,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			restaurant_name TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			estimated_delivery TIMESTAMPTZ NOT NULL,
			delivery_address TEXT NOT NULL DEFAULT '',
			subtotal DOUBLE PRECISION NOT NULL,
			delivery_fee DOUBLE PRECISION NOT NULL,
			total DOUBLE PRECISION NOT NULL,
			payment_method TEXT NOT NULL DEFAULT '',
			special_instructions TEXT NOT NULL DEFAULT '',
			qr_code BYTEA
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			line_id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(id),
			item_id TEXT NOT NULL,
			item_name TEXT NOT NULL,
			item_description TEXT NOT NULL DEFAULT '',
			item_price DOUBLE PRECISION NOT NULL,
			item_category TEXT NOT NULL DEFAULT '',
			quantity INT NOT NULL,
			restaurant_id TEXT NOT NULL,
			restaurant_name TEXT NOT NULL,
			position INT NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// --- users ---

const userColumns = "id, name, email, phone, address, is_admin, created_at"

func (r *PostgresRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Address, &user.IsAdmin, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetByEmailFold(ctx context.Context, email string) (*domain.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE LOWER(email) = LOWER($1)", email)
	return r.scanUser(row)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return r.scanUser(row)
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return r.scanUser(row)
}

func (r *PostgresRepository) InsertUser(ctx context.Context, user *domain.User) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, name, email, phone, address, is_admin, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		user.ID, user.Name, user.Email, user.Phone, user.Address, user.IsAdmin, user.CreatedAt)
	return err
}

func (r *PostgresRepository) UpdateUserProfile(ctx context.Context, id, name, phone, address string) (*domain.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"UPDATE users SET name=$1, phone=$2, address=$3 WHERE id=$4 RETURNING "+userColumns,
		name, phone, address, id)
	return r.scanUser(row)
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Address, &user.IsAdmin, &user.CreatedAt); err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// --- restaurants ---

const restaurantColumns = "id, name, cuisine, rating, delivery_time, delivery_fee, address, is_active, created_at"

func (r *PostgresRepository) scanRestaurantRow(ctx context.Context, row *sql.Row) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := row.Scan(&rest.ID, &rest.Name, &rest.Cuisine, &rest.Rating, &rest.DeliveryTime,
		&rest.DeliveryFee, &rest.Address, &rest.IsActive, &rest.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.menuItemsFor(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	rest.MenuItems = items
	return &rest, nil
}

func (r *PostgresRepository) menuItemsFor(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, description, price, category, is_available, is_popular
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY position`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Category, &item.IsAvailable, &item.IsPopular); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Cuisine, &rest.Rating, &rest.DeliveryTime,
			&rest.DeliveryFee, &rest.Address, &rest.IsActive, &rest.CreatedAt); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	rows.Close()

	for i := range restaurants {
		items, err := r.menuItemsFor(ctx, restaurants[i].ID)
		if err != nil {
			return nil, err
		}
		restaurants[i].MenuItems = items
	}
	return restaurants, nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id = $1", id)
	return r.scanRestaurantRow(ctx, row)
}

func (r *PostgresRepository) GetRestaurantByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE name = $1", name)
	return r.scanRestaurantRow(ctx, row)
}

func (r *PostgresRepository) ToggleRestaurantActive(ctx context.Context, id string) (bool, error) {
	var active bool
	err := r.DB.QueryRowContext(ctx,
		"UPDATE restaurants SET is_active = NOT is_active WHERE id = $1 RETURNING is_active", id).
		Scan(&active)
	if err == sql.ErrNoRows {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return active, nil
}

// InsertRestaurant exists for seeding and admin tooling; restaurants are
// otherwise immutable apart from the active flag.
func (r *PostgresRepository) InsertRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO restaurants (id, name, cuisine, rating, delivery_time, delivery_fee, address, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rest.ID, rest.Name, rest.Cuisine, rest.Rating, rest.DeliveryTime,
		rest.DeliveryFee, rest.Address, rest.IsActive, rest.CreatedAt); err != nil {
		return err
	}
	for i, item := range rest.MenuItems {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO menu_items (id, restaurant_id, name, description, price, category, is_available, is_popular, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, rest.ID, item.Name, item.Description, item.Price,
			item.Category, item.IsAvailable, item.IsPopular, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// --- orders ---

func (r *PostgresRepository) InsertOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, restaurant_id, restaurant_name, status, created_at,
			estimated_delivery, delivery_address, subtotal, delivery_fee, total, payment_method, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		order.ID, order.UserID, order.RestaurantID, order.RestaurantName, string(order.Status),
		order.CreatedAt, order.EstimatedDelivery, order.DeliveryAddress,
		order.Subtotal, order.DeliveryFee, order.Total, order.PaymentMethod, order.SpecialInstructions); err != nil {
		return err
	}

	for i, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (line_id, order_id, item_id, item_name, item_description,
				item_price, item_category, quantity, restaurant_id, restaurant_name, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			item.ID, order.ID, item.MenuItem.ID, item.MenuItem.Name, item.MenuItem.Description,
			item.MenuItem.Price, item.MenuItem.Category, item.Quantity,
			item.RestaurantID, item.RestaurantName, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const orderColumns = `id, user_id, restaurant_id, restaurant_name, status, created_at,
	estimated_delivery, delivery_address, subtotal, delivery_fee, total, payment_method, special_instructions`

func (r *PostgresRepository) orderItemsFor(ctx context.Context, orderID string) ([]domain.CartItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT line_id, item_id, item_name, item_description, item_price, item_category,
			quantity, restaurant_id, restaurant_name
		FROM order_items
		WHERE order_id = $1
		ORDER BY position`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.MenuItem.ID, &item.MenuItem.Name, &item.MenuItem.Description,
			&item.MenuItem.Price, &item.MenuItem.Category, &item.Quantity,
			&item.RestaurantID, &item.RestaurantName); err != nil {
			continue
		}
		item.MenuItem.IsAvailable = true
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) scanOrders(ctx context.Context, rows *sql.Rows) ([]domain.Order, error) {
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var status string
		if err := rows.Scan(&order.ID, &order.UserID, &order.RestaurantID, &order.RestaurantName,
			&status, &order.CreatedAt, &order.EstimatedDelivery, &order.DeliveryAddress,
			&order.Subtotal, &order.DeliveryFee, &order.Total, &order.PaymentMethod, &order.SpecialInstructions); err != nil {
			continue
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
	}
	rows.Close()

	for i := range orders {
		items, err := r.orderItemsFor(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	return r.scanOrders(ctx, rows)
}

func (r *PostgresRepository) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	return r.scanOrders(ctx, rows)
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	var status string
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id).
		Scan(&order.ID, &order.UserID, &order.RestaurantID, &order.RestaurantName,
			&status, &order.CreatedAt, &order.EstimatedDelivery, &order.DeliveryAddress,
			&order.Subtotal, &order.DeliveryFee, &order.Total, &order.PaymentMethod, &order.SpecialInstructions)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatus(status)

	items, err := r.orderItemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", string(status), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SaveOrderQRCode(ctx context.Context, id string, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET qr_code = $1 WHERE id = $2", qr, id)
	return err
}

func (r *PostgresRepository) GetOrderQRCode(ctx context.Context, id string) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", id).Scan(&qr)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return qr, nil
}
