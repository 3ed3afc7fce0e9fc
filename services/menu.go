package services

import (
	"context"
	"errors"
	"fmt"

	"qr-dine/db"
	"qr-dine/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func ListMenu(ctx context.Context, availableOnly bool) ([]models.MenuItem, error) {
	query := `
		SELECT id, name, price, category_id, image, description, available
		FROM menu_items`
	if availableOnly {
		query += ` WHERE available`
	}
	query += ` ORDER BY category_id, name`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var it models.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.CategoryID, &it.Image, &it.Description, &it.Available); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var it models.MenuItem
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, price, category_id, image, description, available
		FROM menu_items WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Name, &it.Price, &it.CategoryID, &it.Image, &it.Description, &it.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return &it, nil
}

func AddMenuItem(ctx context.Context, item models.MenuItem) (string, error) {
	if item.Name == "" {
		return "", fmt.Errorf("name is required")
	}
	if item.CategoryID == "" {
		return "", fmt.Errorf("category is required")
	}
	if item.Price.LessThan(decimal.Zero) {
		return "", fmt.Errorf("price must be >= 0")
	}

	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO menu_items (id, name, price, category_id, image, description, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, item.Name, item.Price, item.CategoryID, item.Image, item.Description, item.Available,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateMenuItem applies an administrator edit. A placed order keeps its own
// snapshots, so this never changes historical totals.
func UpdateMenuItem(ctx context.Context, item models.MenuItem) error {
	if item.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("price must be >= 0")
	}
	tag, err := db.Pool.Exec(ctx, `
		UPDATE menu_items SET
			name = $1, price = $2, category_id = $3, image = $4,
			description = $5, available = $6, updated_at = now()
		WHERE id = $7`,
		item.Name, item.Price, item.CategoryID, item.Image, item.Description, item.Available, item.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func DeleteMenuItem(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name, icon FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
