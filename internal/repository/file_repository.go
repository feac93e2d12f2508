// This file defines the repository for notary files (records), the
// case files binding a template, parties, assets and fees. File
// numbers are human-readable {year}{4-digit sequence} values. The
// original office software read the current maximum and incremented it
// outside any transaction, so two clerks could race to the same
// number; here the read-increment-insert sequence runs inside one
// transaction with a locking read, and the unique index on
// file_number plus a bounded retry covers whatever the lock does not.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lehoangphuc/notary-office-server/internal/model"
)

var (
	// ErrFileNotFound is returned when a notary file cannot be found.
	ErrFileNotFound = errors.New("notary file not found")
	// ErrInvalidTransition is returned when a lifecycle change violates
	// the draft -> pending -> completed (+cancelled) graph.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// FileRepo encapsulates database queries for notary files and their
// party/asset participation rows.
type FileRepo struct{ db *sql.DB }

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{db: db} }

// FileSearchQuery defines filters and pagination for listing files.
type FileSearchQuery struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// NextFileNumber computes the file number following last for the given
// year. last is the highest existing number with the year's prefix, or
// empty when the year has no files yet; the sequence part is zero-padded
// to four digits and simply grows wider past 9999.
func NextFileNumber(last string, year int) string {
	prefix := strconv.Itoa(year)
	if last == "" || !strings.HasPrefix(last, prefix) {
		return fmt.Sprintf("%s%04d", prefix, 1)
	}
	seq, err := strconv.Atoi(last[len(prefix):])
	if err != nil {
		return fmt.Sprintf("%s%04d", prefix, 1)
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1)
}

// Create inserts a notary file together with its participation rows.
// The file number is allocated inside the same transaction using a
// locking read on the year's current maximum; a duplicate-key insert
// (possible when a competing transaction committed between lock
// acquisition attempts) is retried with a fresh number.
func (r *FileRepo) Create(ctx context.Context, f *model.NotaryFile, partyIDs, assetIDs []uint64) error {
	const maxAttempts = 3
	year := time.Now().Year()

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := r.createOnce(ctx, f, partyIDs, assetIDs, year)
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func (r *FileRepo) createOnce(ctx context.Context, f *model.NotaryFile, partyIDs, assetIDs []uint64, year int) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	// Serialize sequence allocation for this year across transactions.
	// Longest number first: once the sequence outgrows four digits a
	// plain lexicographic DESC would rank "...9999" above "...10000"
	// and hand back a stale maximum.
	var last sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT file_number FROM notary_files
		 WHERE file_number LIKE ?
		 ORDER BY LENGTH(file_number) DESC, file_number DESC LIMIT 1 FOR UPDATE`,
		strconv.Itoa(year)+"%").Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	f.FileNumber = NextFileNumber(last.String, year)
	f.TotalFeeVND = f.NotaryFeeVND + f.OtherFeesVND

	res, err := tx.ExecContext(ctx,
		`INSERT INTO notary_files
		 (file_number, template_id, title, contract_date, notary_fee_vnd,
		  other_fees_vnd, total_fee_vnd, status, payment_status, created_by)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		f.FileNumber, f.TemplateID, f.Title, f.ContractDate, f.NotaryFeeVND,
		f.OtherFeesVND, f.TotalFeeVND, model.StatusDraft, model.PaymentUnpaid, f.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	f.Status = model.StatusDraft
	f.PaymentStatus = model.PaymentUnpaid

	for _, pid := range partyIDs {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO file_parties (file_id, party_id) VALUES (?,?)", f.ID, pid); err != nil {
			if isForeignKeyErr(err) {
				err = ErrPartyNotFound
			}
			return err
		}
	}
	for _, aid := range assetIDs {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO file_assets (file_id, asset_id) VALUES (?,?)", f.ID, aid); err != nil {
			if isForeignKeyErr(err) {
				err = ErrAssetNotFound
			}
			return err
		}
	}

	err = tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM notary_files WHERE id=?", f.ID).
		Scan(&f.CreatedAt, &f.UpdatedAt)
	return err
}

const fileSelect = `SELECT f.id, f.file_number, f.template_id, t.name, f.title,
	f.contract_date, f.notary_fee_vnd, f.other_fees_vnd, f.total_fee_vnd,
	f.status, f.payment_status, f.created_by, u.full_name,
	f.notarized_by, f.notarized_at, f.created_at, f.updated_at
	FROM notary_files f
	LEFT JOIN contract_templates t ON t.id = f.template_id
	LEFT JOIN users u ON u.id = f.created_by`

func scanFile(row interface{ Scan(...any) error }) (model.NotaryFile, error) {
	var f model.NotaryFile
	var contractDate sql.NullTime
	err := row.Scan(&f.ID, &f.FileNumber, &f.TemplateID, &f.TemplateName, &f.Title,
		&contractDate, &f.NotaryFeeVND, &f.OtherFeesVND, &f.TotalFeeVND,
		&f.Status, &f.PaymentStatus, &f.CreatedBy, &f.CreatorName,
		&f.NotarizedBy, &f.NotarizedAt, &f.CreatedAt, &f.UpdatedAt)
	f.ContractDate = dateString(contractDate)
	return f, err
}

// GetByID fetches a file with joined names plus its parties and assets.
func (r *FileRepo) GetByID(ctx context.Context, id uint64) (model.NotaryFile, error) {
	f, err := scanFile(r.db.QueryRowContext(ctx, fileSelect+" WHERE f.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.NotaryFile{}, ErrFileNotFound
	}
	if err != nil {
		return model.NotaryFile{}, err
	}

	f.Parties, err = r.fileParties(ctx, id)
	if err != nil {
		return model.NotaryFile{}, err
	}
	f.Assets, err = r.fileAssets(ctx, id)
	if err != nil {
		return model.NotaryFile{}, err
	}
	return f, nil
}

func (r *FileRepo) fileParties(ctx context.Context, fileID uint64) ([]model.Party, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+prefixCols("p", partyCols)+`
		 FROM parties p JOIN file_parties fp ON fp.party_id = p.id
		 WHERE fp.file_id = ? ORDER BY p.id`, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Party, 0, 4)
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *FileRepo) fileAssets(ctx context.Context, fileID uint64) ([]model.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+prefixCols("a", assetCols)+`
		 FROM assets a JOIN file_assets fa ON fa.asset_id = a.id
		 WHERE fa.file_id = ? ORDER BY a.id`, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Asset, 0, 4)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Search lists files matching the query, newest first, with the total
// count for pagination. Search matches file number or title.
func (r *FileRepo) Search(ctx context.Context, q FileSearchQuery) ([]model.NotaryFile, int64, error) {
	where := []string{}
	args := []any{}

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		where = append(where, "(f.file_number LIKE ? OR f.title LIKE ?)")
		args = append(args, like, like)
	}
	if model.ValidStatus(q.Status) {
		where = append(where, "f.status = ?")
		args = append(args, q.Status)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notary_files f WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	rows, err := r.db.QueryContext(ctx,
		fileSelect+" WHERE "+cond+" ORDER BY f.created_at DESC LIMIT ? OFFSET ?",
		append(append([]any{}, args...), q.Limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.NotaryFile, 0, q.Limit)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatus applies a lifecycle transition under a locking read so
// concurrent updates cannot both pass the guard. Moving to completed
// stamps the acting user and time as the notarization record.
func (r *FileRepo) UpdateStatus(ctx context.Context, id uint64, newStatus string, actorID uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var current string
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM notary_files WHERE id=? FOR UPDATE", id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFileNotFound
	}
	if err != nil {
		return err
	}
	if !model.CanTransition(current, newStatus) {
		return ErrInvalidTransition
	}

	if newStatus == model.StatusCompleted {
		_, err = tx.ExecContext(ctx,
			`UPDATE notary_files
			 SET status=?, notarized_by=?, notarized_at=UTC_TIMESTAMP(), updated_at=CURRENT_TIMESTAMP
			 WHERE id=?`, newStatus, actorID, id)
	} else {
		_, err = tx.ExecContext(ctx,
			"UPDATE notary_files SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
			newStatus, id)
	}
	return err
}

// UpdatePayment sets the payment status of a file.
func (r *FileRepo) UpdatePayment(ctx context.Context, id uint64, paymentStatus string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notary_files SET payment_status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		paymentStatus, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM notary_files WHERE id=?", id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrFileNotFound
			}
			return err
		}
	}
	return nil
}

// prefixCols qualifies every column in a comma-separated list with a
// table alias so shared column lists can be reused in joined queries.
func prefixCols(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
