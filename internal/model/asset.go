package model

import "time"

// Asset describes a piece of property (typically real estate)
// referenced by notary files. Rows live in the `assets` table.
// OwnerID optionally links the asset to the party that owns it;
// the reference is enforced by a foreign key.
//
// Monetary values are stored as whole Vietnamese đồng in a BIGINT
// column. Area is kept as a decimal string to avoid binary float
// drift on land measurements.
type Asset struct {
	ID                uint64    `json:"id"`                // assets.id
	Type              string    `json:"type"`              // assets.type (e.g. "land", "house", "apartment")
	Name              string    `json:"name"`              // assets.name
	Location          *string   `json:"location"`          // assets.location
	AreaM2            *string   `json:"areaM2"`            // assets.area_m2 DECIMAL(12,2), scanned as string
	CertificateNumber *string   `json:"certificateNumber"` // assets.certificate_number
	CertificateIssuer *string   `json:"certificateIssuer"` // assets.certificate_issuer
	CertificateDate   *string   `json:"certificateDate"`   // assets.certificate_date (YYYY-MM-DD)
	MarketValueVND    *int64    `json:"marketValueVnd"`    // assets.market_value_vnd
	OwnerID           *uint64   `json:"ownerId"`           // assets.owner_id -> parties.id (nullable)
	Notes             *string   `json:"notes"`             // assets.notes
	CreatedAt         time.Time `json:"createdAt"`         // assets.created_at
	UpdatedAt         time.Time `json:"updatedAt"`         // assets.updated_at
}
