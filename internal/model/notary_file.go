package model

import "time"

// Notary file lifecycle states. A file starts as a draft, moves to
// pending once submitted for notarization and to completed when the
// notary signs off. Any non-terminal file can be cancelled.
// Completed and cancelled are terminal; files are never deleted.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment states for a notary file's fees.
const (
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment state.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentUnpaid, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

// CanTransition reports whether a file may move from one lifecycle
// state to another. The legal graph is
//
//	draft -> pending -> completed
//
// with cancellation allowed from any non-terminal state. Terminal
// states (completed, cancelled) accept no further transitions, and
// self-transitions are rejected.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusDraft:
		return to == StatusPending || to == StatusCancelled
	case StatusPending:
		return to == StatusCompleted || to == StatusCancelled
	default: // completed, cancelled or unknown
		return false
	}
}

// NotaryFile is the notarization case file binding a template,
// parties, assets and fees, stored in the `notary_files` table.
// FileNumber is a unique human-readable number of the form
// {year}{0-padded 4-digit sequence}, allocated server-side at
// creation. Fee columns hold whole đồng; TotalFeeVND is always
// NotaryFeeVND + OtherFeesVND.
type NotaryFile struct {
	ID            uint64     `json:"id"`            // notary_files.id
	FileNumber    string     `json:"fileNumber"`    // notary_files.file_number (unique)
	TemplateID    *uint64    `json:"templateId"`    // notary_files.template_id (nullable)
	TemplateName  *string    `json:"templateName"`  // joined from contract_templates.name
	Title         string     `json:"title"`         // notary_files.title
	ContractDate  *string    `json:"contractDate"`  // notary_files.contract_date (YYYY-MM-DD)
	NotaryFeeVND  int64      `json:"notaryFeeVnd"`  // notary_files.notary_fee_vnd
	OtherFeesVND  int64      `json:"otherFeesVnd"`  // notary_files.other_fees_vnd
	TotalFeeVND   int64      `json:"totalFeeVnd"`   // notary_files.total_fee_vnd
	Status        string     `json:"status"`        // notary_files.status
	PaymentStatus string     `json:"paymentStatus"` // notary_files.payment_status
	CreatedBy     uint64     `json:"createdBy"`     // notary_files.created_by -> users.id
	CreatorName   *string    `json:"creatorName"`   // joined from users.full_name
	NotarizedBy   *uint64    `json:"notarizedBy"`   // notary_files.notarized_by (nullable)
	NotarizedAt   *time.Time `json:"notarizedAt"`   // notary_files.notarized_at (nullable)
	CreatedAt     time.Time  `json:"createdAt"`     // notary_files.created_at
	UpdatedAt     time.Time  `json:"updatedAt"`     // notary_files.updated_at

	// Participants, populated on detail reads from the
	// file_parties and file_assets join tables.
	Parties []Party `json:"parties,omitempty"`
	Assets  []Asset `json:"assets,omitempty"`
}
