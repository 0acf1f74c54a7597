// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"

	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, description, slug`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner rowScanner) (*models.Category, error) {
	var c models.Category
	if err := scanner.Scan(&c.ID, &c.Name, &c.Description, &c.Slug); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, classify("list categories", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, classify("scan category", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list categories", err)
	}
	return items, nil
}

// FindByID retrieves a category by ID.
func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err != nil {
		return nil, classify("find category by id", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by its slug.
func (s *CategoryStore) FindBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, categorySlug)
	c, err := scanCategory(row)
	if err != nil {
		return nil, classify("find category by slug", err)
	}
	return c, nil
}

// Create inserts a new category with a slug derived from its name.
// A duplicate name or slug fails with ErrConflict.
func (s *CategoryStore) Create(ctx context.Context, name string, description *string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description, slug)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		name, description, slug.Generate(name),
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, classify("create category", err)
	}
	return c, nil
}

// Update merges patch into the stored category and returns the result.
// The read and the write share a transaction so concurrent patches to
// different fields do not overwrite each other.
func (s *CategoryStore) Update(ctx context.Context, id int64, patch models.CategoryPatch) (*models.Category, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("begin category update", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1 FOR UPDATE`, id)
	c, err := scanCategory(row)
	if err != nil {
		return nil, classify("load category for update", err)
	}

	if patch.IsEmpty() {
		return c, nil
	}
	patch.Apply(c)

	row = tx.QueryRowContext(ctx, `
		UPDATE categories SET name = $1, description = $2, slug = $3
		WHERE id = $4
		RETURNING `+categoryColumns,
		c.Name, c.Description, c.Slug, c.ID,
	)
	updated, err := scanCategory(row)
	if err != nil {
		return nil, classify("update category", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("commit category update", err)
	}
	return updated, nil
}

// Delete removes a category and returns the removed row. Association rows
// referencing the category are left in place.
func (s *CategoryStore) Delete(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `DELETE FROM categories WHERE id = $1 RETURNING `+categoryColumns, id)
	c, err := scanCategory(row)
	if err != nil {
		return nil, classify("delete category", err)
	}
	return c, nil
}
