// This file defines repository methods for the party registry. A party
// is an individual or organization that can sign notarized records.
// Duplicate citizen-id/tax-code rejection happens twice: an advisory
// pre-check used by handlers for friendly messages, and the unique
// indexes (uq_parties_citizen_id, uq_parties_tax_code) which remain the
// authoritative guard under concurrent inserts.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lehoangphuc/notary-office-server/internal/model"
)

var (
	// ErrPartyNotFound is returned when a party cannot be found.
	ErrPartyNotFound = errors.New("party not found")
	// ErrDuplicateCitizenID is returned when another party already holds the citizen id.
	ErrDuplicateCitizenID = errors.New("citizen id already exists")
	// ErrDuplicateTaxCode is returned when another party already holds the tax code.
	ErrDuplicateTaxCode = errors.New("tax code already exists")
)

// PartyRepo encapsulates all database queries related to parties.
type PartyRepo struct{ db *sql.DB }

func NewPartyRepo(db *sql.DB) *PartyRepo { return &PartyRepo{db: db} }

// PartySearchQuery defines filters and pagination for listing parties.
// Search matches a substring of full name, citizen id, tax code, phone
// or email.
type PartySearchQuery struct {
	Search string
	Type   string
	Page   int
	Limit  int
}

const partyCols = `id, type, full_name, citizen_id, tax_code, phone, email, address,
	birth_date, birth_place, gender, nationality, occupation,
	representative_name, representative_position, bank_account, bank_name, notes,
	created_at, updated_at`

func scanParty(row interface{ Scan(...any) error }) (model.Party, error) {
	var p model.Party
	err := row.Scan(&p.ID, &p.Type, &p.FullName, &p.CitizenID, &p.TaxCode, &p.Phone,
		&p.Email, &p.Address, &p.BirthDate, &p.BirthPlace, &p.Gender, &p.Nationality,
		&p.Occupation, &p.RepresentativeName, &p.RepresentativePosition,
		&p.BankAccount, &p.BankName, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a new party. On success the ID and timestamp fields
// are populated from a follow-up SELECT so callers receive the full
// record. A 1062 from either unique index is mapped to the matching
// duplicate sentinel.
func (r *PartyRepo) Create(ctx context.Context, p *model.Party) error {
	const qInsert = `INSERT INTO parties
		(type, full_name, citizen_id, tax_code, phone, email, address,
		 birth_date, birth_place, gender, nationality, occupation,
		 representative_name, representative_position, bank_account, bank_name, notes)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		p.Type, p.FullName, p.CitizenID, p.TaxCode, p.Phone, p.Email, p.Address,
		p.BirthDate, p.BirthPlace, p.Gender, p.Nationality, p.Occupation,
		p.RepresentativeName, p.RepresentativePosition, p.BankAccount, p.BankName, p.Notes)
	if err != nil {
		return mapPartyDuplicate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	created, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = created
	return nil
}

// GetByID fetches a party by its ID.
func (r *PartyRepo) GetByID(ctx context.Context, id uint64) (model.Party, error) {
	p, err := scanParty(r.db.QueryRowContext(ctx,
		"SELECT "+partyCols+" FROM parties WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Party{}, ErrPartyNotFound
	}
	return p, err
}

// Update writes the full row back. Handlers load the current record,
// merge the partial request into it and pass the result here, so every
// column is written each time.
func (r *PartyRepo) Update(ctx context.Context, p *model.Party) error {
	const q = `UPDATE parties SET
		type=?, full_name=?, citizen_id=?, tax_code=?, phone=?, email=?, address=?,
		birth_date=?, birth_place=?, gender=?, nationality=?, occupation=?,
		representative_name=?, representative_position=?, bank_account=?, bank_name=?, notes=?,
		updated_at=CURRENT_TIMESTAMP
		WHERE id=?`
	res, err := r.db.ExecContext(ctx, q,
		p.Type, p.FullName, p.CitizenID, p.TaxCode, p.Phone, p.Email, p.Address,
		p.BirthDate, p.BirthPlace, p.Gender, p.Nationality, p.Occupation,
		p.RepresentativeName, p.RepresentativePosition, p.BankAccount, p.BankName, p.Notes,
		p.ID)
	if err != nil {
		return mapPartyDuplicate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM parties WHERE id=?", p.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPartyNotFound
			}
			return err
		}
	}
	updated, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = updated
	return nil
}

// CitizenIDTaken reports whether a different party (excludeID may be 0)
// already holds the citizen id. Advisory pre-check only.
func (r *PartyRepo) CitizenIDTaken(ctx context.Context, citizenID string, excludeID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM parties WHERE citizen_id = ? AND id <> ? LIMIT 1",
		citizenID, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// TaxCodeTaken reports whether a different party already holds the tax code.
func (r *PartyRepo) TaxCodeTaken(ctx context.Context, taxCode string, excludeID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM parties WHERE tax_code = ? AND id <> ? LIMIT 1",
		taxCode, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Search lists parties matching the query, newest update first, along
// with the total row count for pagination.
func (r *PartyRepo) Search(ctx context.Context, q PartySearchQuery) ([]model.Party, int64, error) {
	where := []string{}
	args := []any{}

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		where = append(where,
			"(full_name LIKE ? OR citizen_id LIKE ? OR tax_code LIKE ? OR phone LIKE ? OR email LIKE ?)")
		args = append(args, like, like, like, like, like)
	}
	if q.Type == model.PartyIndividual || q.Type == model.PartyOrganization {
		where = append(where, "type = ?")
		args = append(args, q.Type)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM parties WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	dataSQL := "SELECT " + partyCols + " FROM parties WHERE " + cond +
		" ORDER BY updated_at DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Party, 0, q.Limit)
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// mapPartyDuplicate converts a 1062 error into the sentinel matching
// the violated index; other errors pass through untouched.
func mapPartyDuplicate(err error) error {
	switch {
	case duplicateKeyContains(err, "citizen"):
		return ErrDuplicateCitizenID
	case duplicateKeyContains(err, "tax"):
		return ErrDuplicateTaxCode
	default:
		return err
	}
}
