package model

import "time"

// Category classifies contract templates. Pure classification data
// from the `contract_categories` table; sort_order controls display
// order in the catalog.
type Category struct {
	ID          uint64    `json:"id"`          // contract_categories.id
	Name        string    `json:"name"`        // contract_categories.name
	Description *string   `json:"description"` // contract_categories.description
	SortOrder   int       `json:"sortOrder"`   // contract_categories.sort_order
	CreatedAt   time.Time `json:"createdAt"`   // contract_categories.created_at
}

// Template is reusable contract text with declared placeholder
// fields, stored in the `contract_templates` table. The content
// references placeholders with the literal {{token}} convention.
// RequiredFields and VariableFields are stored as JSON arrays of
// token names: required tokens must be supplied when rendering,
// variable tokens may be left unresolved.
type Template struct {
	ID              uint64    `json:"id"`              // contract_templates.id
	CategoryID      *uint64   `json:"categoryId"`      // contract_templates.category_id (nullable)
	CategoryName    *string   `json:"categoryName"`    // joined from contract_categories.name
	Name            string    `json:"name"`            // contract_templates.name
	Description     *string   `json:"description"`     // contract_templates.description
	TemplateContent string    `json:"templateContent"` // contract_templates.template_content
	RequiredFields  []string  `json:"requiredFields"`  // contract_templates.required_fields (JSON)
	VariableFields  []string  `json:"variableFields"`  // contract_templates.variable_fields (JSON)
	IsActive        bool      `json:"isActive"`        // contract_templates.is_active
	CreatedBy       uint64    `json:"createdBy"`       // contract_templates.created_by -> users.id
	CreatorName     *string   `json:"creatorName"`     // joined from users.full_name
	CreatedAt       time.Time `json:"createdAt"`       // contract_templates.created_at
	UpdatedAt       time.Time `json:"updatedAt"`       // contract_templates.updated_at
}
