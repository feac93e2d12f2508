package model

import "time"

// Party types stored in the parties.type column.
const (
	PartyIndividual   = "individual"
	PartyOrganization = "organization"
)

// Party represents an individual or organization capable of signing
// a notarized record. Rows live in the `parties` table. CitizenID
// and TaxCode are each unique when present; both are nullable since
// individuals carry a citizen id and organizations a tax code.
// Representative fields only apply to organizations.
type Party struct {
	ID                     uint64     `json:"id"`                     // parties.id
	Type                   string     `json:"type"`                   // parties.type
	FullName               string     `json:"fullName"`               // parties.full_name
	CitizenID              *string    `json:"citizenId"`              // parties.citizen_id (nullable, unique)
	TaxCode                *string    `json:"taxCode"`                // parties.tax_code (nullable, unique)
	Phone                  *string    `json:"phone"`                  // parties.phone
	Email                  *string    `json:"email"`                  // parties.email
	Address                *string    `json:"address"`                // parties.address
	BirthDate              *time.Time `json:"birthDate"`              // parties.birth_date
	BirthPlace             *string    `json:"birthPlace"`             // parties.birth_place
	Gender                 *string    `json:"gender"`                 // parties.gender
	Nationality            string     `json:"nationality"`            // parties.nationality (defaults to "Việt Nam")
	Occupation             *string    `json:"occupation"`             // parties.occupation
	RepresentativeName     *string    `json:"representativeName"`     // parties.representative_name
	RepresentativePosition *string    `json:"representativePosition"` // parties.representative_position
	BankAccount            *string    `json:"bankAccount"`            // parties.bank_account
	BankName               *string    `json:"bankName"`               // parties.bank_name
	Notes                  *string    `json:"notes"`                  // parties.notes
	CreatedAt              time.Time  `json:"createdAt"`              // parties.created_at
	UpdatedAt              time.Time  `json:"updatedAt"`              // parties.updated_at
}
