package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lehoangphuc/notary-office-server/internal/model"
)

// ErrAssetNotFound is returned when an asset cannot be found.
var ErrAssetNotFound = errors.New("asset not found")

// ErrOwnerNotFound is returned when an asset references a party id
// that does not exist. The foreign key is the authoritative check;
// MySQL reports it as error 1452.
var ErrOwnerNotFound = errors.New("owner party not found")

// AssetRepo encapsulates all database queries related to assets.
type AssetRepo struct{ db *sql.DB }

func NewAssetRepo(db *sql.DB) *AssetRepo { return &AssetRepo{db: db} }

// AssetSearchQuery defines filters and pagination for listing assets.
type AssetSearchQuery struct {
	Search  string
	Type    string
	OwnerID uint64
	Page    int
	Limit   int
}

const assetCols = `id, type, name, location, area_m2, certificate_number,
	certificate_issuer, certificate_date, market_value_vnd, owner_id, notes,
	created_at, updated_at`

func scanAsset(row interface{ Scan(...any) error }) (model.Asset, error) {
	var a model.Asset
	var certDate sql.NullTime
	err := row.Scan(&a.ID, &a.Type, &a.Name, &a.Location, &a.AreaM2,
		&a.CertificateNumber, &a.CertificateIssuer, &certDate,
		&a.MarketValueVND, &a.OwnerID, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	a.CertificateDate = dateString(certDate)
	return a, err
}

func mapAssetFK(err error) error {
	if isForeignKeyErr(err) {
		return ErrOwnerNotFound
	}
	return err
}

// Create inserts a new asset and populates ID and timestamps.
func (r *AssetRepo) Create(ctx context.Context, a *model.Asset) error {
	const q = `INSERT INTO assets
		(type, name, location, area_m2, certificate_number, certificate_issuer,
		 certificate_date, market_value_vnd, owner_id, notes)
		VALUES (?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		a.Type, a.Name, a.Location, a.AreaM2, a.CertificateNumber,
		a.CertificateIssuer, a.CertificateDate, a.MarketValueVND, a.OwnerID, a.Notes)
	if err != nil {
		return mapAssetFK(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	created, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = created
	return nil
}

// GetByID fetches an asset by its ID.
func (r *AssetRepo) GetByID(ctx context.Context, id uint64) (model.Asset, error) {
	a, err := scanAsset(r.db.QueryRowContext(ctx,
		"SELECT "+assetCols+" FROM assets WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, ErrAssetNotFound
	}
	return a, err
}

// Update writes the full merged row back, same contract as PartyRepo.Update.
func (r *AssetRepo) Update(ctx context.Context, a *model.Asset) error {
	const q = `UPDATE assets SET
		type=?, name=?, location=?, area_m2=?, certificate_number=?,
		certificate_issuer=?, certificate_date=?, market_value_vnd=?, owner_id=?, notes=?,
		updated_at=CURRENT_TIMESTAMP
		WHERE id=?`
	res, err := r.db.ExecContext(ctx, q,
		a.Type, a.Name, a.Location, a.AreaM2, a.CertificateNumber,
		a.CertificateIssuer, a.CertificateDate, a.MarketValueVND, a.OwnerID, a.Notes,
		a.ID)
	if err != nil {
		return mapAssetFK(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM assets WHERE id=?", a.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAssetNotFound
			}
			return err
		}
	}
	updated, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = updated
	return nil
}

// Search lists assets matching the query, newest update first, with
// the total count for pagination.
func (r *AssetRepo) Search(ctx context.Context, q AssetSearchQuery) ([]model.Asset, int64, error) {
	where := []string{}
	args := []any{}

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		where = append(where, "(name LIKE ? OR location LIKE ? OR certificate_number LIKE ?)")
		args = append(args, like, like, like)
	}
	if q.Type != "" {
		where = append(where, "type = ?")
		args = append(args, q.Type)
	}
	if q.OwnerID != 0 {
		where = append(where, "owner_id = ?")
		args = append(args, q.OwnerID)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM assets WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+assetCols+" FROM assets WHERE "+cond+
			" ORDER BY updated_at DESC LIMIT ? OFFSET ?",
		append(append([]any{}, args...), q.Limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Asset, 0, q.Limit)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
