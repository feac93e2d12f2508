// This file defines repository methods for the contract template
// catalog: categories (pure classification) and templates whose bodies
// declare {{token}} placeholders. The required/variable token lists
// are persisted as JSON arrays in TEXT columns.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lehoangphuc/notary-office-server/internal/model"
)

var (
	// ErrTemplateNotFound is returned when a template cannot be found.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrCategoryNotFound is returned when a referenced category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
)

// TemplateRepo encapsulates database queries for contract categories
// and templates.
type TemplateRepo struct{ db *sql.DB }

func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

// ListCategories returns all categories ordered by sort_order then name.
func (r *TemplateRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, sort_order, created_at FROM contract_categories ORDER BY sort_order, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Category, 0, 8)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateCategory inserts a category and populates its ID.
func (r *TemplateRepo) CreateCategory(ctx context.Context, c *model.Category) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contract_categories (name, description, sort_order) VALUES (?,?,?)",
		c.Name, c.Description, c.SortOrder)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM contract_categories WHERE id=?", c.ID).Scan(&c.CreatedAt)
}

const templateSelect = `SELECT t.id, t.category_id, c.name, t.name, t.description,
	t.template_content, t.required_fields, t.variable_fields, t.is_active,
	t.created_by, u.full_name, t.created_at, t.updated_at
	FROM contract_templates t
	LEFT JOIN contract_categories c ON c.id = t.category_id
	LEFT JOIN users u ON u.id = t.created_by`

func scanTemplate(row interface{ Scan(...any) error }) (model.Template, error) {
	var t model.Template
	var reqJSON, varJSON []byte
	err := row.Scan(&t.ID, &t.CategoryID, &t.CategoryName, &t.Name, &t.Description,
		&t.TemplateContent, &reqJSON, &varJSON, &t.IsActive,
		&t.CreatedBy, &t.CreatorName, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	if len(reqJSON) > 0 {
		if err := json.Unmarshal(reqJSON, &t.RequiredFields); err != nil {
			return t, err
		}
	}
	if len(varJSON) > 0 {
		if err := json.Unmarshal(varJSON, &t.VariableFields); err != nil {
			return t, err
		}
	}
	return t, nil
}

// Create inserts a template. Field lists are marshalled to JSON; a
// missing category surfaces as ErrCategoryNotFound via the FK (1452).
func (r *TemplateRepo) Create(ctx context.Context, t *model.Template) error {
	reqJSON, err := json.Marshal(fieldsOrEmpty(t.RequiredFields))
	if err != nil {
		return err
	}
	varJSON, err := json.Marshal(fieldsOrEmpty(t.VariableFields))
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contract_templates
		 (category_id, name, description, template_content, required_fields, variable_fields, is_active, created_by)
		 VALUES (?,?,?,?,?,?,?,?)`,
		t.CategoryID, t.Name, t.Description, t.TemplateContent,
		string(reqJSON), string(varJSON), t.IsActive, t.CreatedBy)
	if err != nil {
		if isForeignKeyErr(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	created, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = created
	return nil
}

// GetByID fetches a template with its category and creator names joined.
func (r *TemplateRepo) GetByID(ctx context.Context, id uint64) (model.Template, error) {
	t, err := scanTemplate(r.db.QueryRowContext(ctx, templateSelect+" WHERE t.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Template{}, ErrTemplateNotFound
	}
	return t, err
}

// Update writes the merged template row back.
func (r *TemplateRepo) Update(ctx context.Context, t *model.Template) error {
	reqJSON, err := json.Marshal(fieldsOrEmpty(t.RequiredFields))
	if err != nil {
		return err
	}
	varJSON, err := json.Marshal(fieldsOrEmpty(t.VariableFields))
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE contract_templates SET
		 category_id=?, name=?, description=?, template_content=?,
		 required_fields=?, variable_fields=?, is_active=?, updated_at=CURRENT_TIMESTAMP
		 WHERE id=?`,
		t.CategoryID, t.Name, t.Description, t.TemplateContent,
		string(reqJSON), string(varJSON), t.IsActive, t.ID)
	if err != nil {
		if isForeignKeyErr(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM contract_templates WHERE id=?", t.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTemplateNotFound
			}
			return err
		}
	}
	updated, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = updated
	return nil
}

// List returns templates ordered by most recent update, optionally
// filtered by category. The catalog is small so no pagination here,
// mirroring the listing screen it backs.
func (r *TemplateRepo) List(ctx context.Context, categoryID uint64) ([]model.Template, error) {
	q := templateSelect
	args := []any{}
	if categoryID != 0 {
		q += " WHERE t.category_id = ?"
		args = append(args, categoryID)
	}
	q += " ORDER BY t.updated_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Template, 0, 16)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// fieldsOrEmpty keeps the JSON columns as [] instead of null for nil slices.
func fieldsOrEmpty(fields []string) []string {
	if fields == nil {
		return []string{}
	}
	return fields
}
