// AngelaMos | 2026
// repository.go

package submission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/leadtrack/internal/core"
)

type LocationStat struct {
	Country    string  `db:"geo_country"  json:"country"`
	Region     string  `db:"geo_region"   json:"region"`
	City       string  `db:"geo_city"     json:"city"`
	Latitude   float64 `db:"latitude"     json:"latitude"`
	Longitude  float64 `db:"longitude"    json:"longitude"`
	Count      int     `db:"count"        json:"count"`
	AvgQuality float64 `db:"avg_quality"  json:"avg_quality"`
}

type Repository interface {
	Insert(ctx context.Context, sub *Submission) error
	GetByID(ctx context.Context, id string) (*Submission, error)
	List(ctx context.Context, params ListParams) ([]Submission, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*Submission, error)
	AppendNote(ctx context.Context, note *Note) (*Submission, error)
	BulkUpdate(
		ctx context.Context,
		ids []string,
		patch BulkPatch,
	) (int64, error)
	SoftDelete(ctx context.Context, id, actorID string) error
	Recent(ctx context.Context, limit int) ([]Summary, error)
	LocationStats(ctx context.Context) ([]LocationStat, error)
}

type repository struct {
	db  core.DBTX
	txs *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, txs: db}
}

func (r *repository) Insert(ctx context.Context, sub *Submission) error {
	query := `
		INSERT INTO submissions (
			id, fname, lname, email, phone, address, city, state, zip,
			gender, dob, diagnosis_year,
			ip_address, user_agent,
			browser_family, browser_version, browser_major,
			os_family, os_version, os_major,
			device_family, device_type,
			geo_country, geo_country_code, geo_region, geo_city, geo_zip,
			geo_latitude, geo_longitude, geo_timezone, geo_isp, geo_org,
			trusted_form_cert_url, case_type, ownerid, campaign,
			offer_url, referrer,
			submission_date, processed, status, quality_score
		) VALUES (
			:id, :fname, :lname, :email, :phone, :address, :city, :state,
			:zip, :gender, :dob, :diagnosis_year,
			:ip_address, :user_agent,
			:browser_family, :browser_version, :browser_major,
			:os_family, :os_version, :os_major,
			:device_family, :device_type,
			:geo_country, :geo_country_code, :geo_region, :geo_city,
			:geo_zip, :geo_latitude, :geo_longitude, :geo_timezone,
			:geo_isp, :geo_org,
			:trusted_form_cert_url, :case_type, :ownerid, :campaign,
			:offer_url, :referrer,
			:submission_date, :processed, :status, :quality_score
		)`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, sub); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Submission, error) {
	return getByID(ctx, r.db, id)
}

func getByID(ctx context.Context, q core.DBTX, id string) (*Submission, error) {
	var sub Submission
	err := q.GetContext(ctx, &sub,
		`SELECT * FROM submissions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get submission: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}

	err = q.SelectContext(ctx, &sub.Notes, `
		SELECT id, submission_id, content, author_id, created_at
		FROM submission_notes
		WHERE submission_id = $1
		ORDER BY created_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("get submission notes: %w", err)
	}

	return &sub, nil
}

// BuildFilter renders the WHERE clause for a submission query. List
// uses it for both the count and page queries; the export path reuses
// it so downloads honor the same filters. The search term matches
// name, contact, and resolved location fields case-insensitively.
func BuildFilter(params ListParams) (string, []any) {
	clauses := make([]string, 0, 5)
	args := make([]any, 0, 6)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Search != "" {
		pattern := "%" + escapeLike(params.Search) + "%"
		p := arg(pattern)
		clauses = append(clauses, fmt.Sprintf(`(
			fname ILIKE %[1]s OR lname ILIKE %[1]s OR email ILIKE %[1]s OR
			phone ILIKE %[1]s OR geo_city ILIKE %[1]s OR
			geo_region ILIKE %[1]s)`, p))
	}
	if params.Status != "" {
		clauses = append(clauses, "status = "+arg(params.Status))
	}
	if params.Country != "" {
		clauses = append(clauses, "geo_country = "+arg(params.Country))
	}
	if params.DateFrom != nil {
		clauses = append(clauses, "submission_date >= "+arg(*params.DateFrom))
	}
	if params.DateTo != nil {
		clauses = append(clauses, "submission_date <= "+arg(*params.DateTo))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Submission, int, error) {
	where, args := BuildFilter(params)

	var total int
	countQuery := "SELECT COUNT(*) FROM submissions" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	order := fmt.Sprintf(" ORDER BY %s %s",
		sortColumns[params.SortBy],
		strings.ToUpper(params.SortOrder),
	)
	page := fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	pageArgs := append(args, params.Limit, params.Offset())

	subs := []Submission{}
	query := "SELECT * FROM submissions" + where + order + page
	if err := r.db.SelectContext(ctx, &subs, query, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}

	return subs, total, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*Submission, error) {
	query := `
		UPDATE submissions
		SET status = $2, processed = ($2 != 'pending'), updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("update status: %w", core.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// AppendNote inserts the note and re-reads the record in one
// transaction, so the returned submission always carries the new note
// and a status seen at the same instant.
func (r *repository) AppendNote(
	ctx context.Context,
	note *Note,
) (*Submission, error) {
	query := `
		INSERT INTO submission_notes (id, submission_id, content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	var sub *Submission
	err := core.InTx(ctx, r.txs, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &note.CreatedAt, query,
			note.ID,
			note.SubmissionID,
			note.Content,
			note.AuthorID,
		)
		if err != nil {
			if isForeignKeyError(err) {
				return fmt.Errorf("append note: %w", core.ErrNotFound)
			}
			return fmt.Errorf("append note: %w", err)
		}

		sub, err = getByID(ctx, tx, note.SubmissionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// BulkUpdate applies the same patch to every listed id. Best effort:
// ids that match nothing are skipped, not reported individually.
func (r *repository) BulkUpdate(
	ctx context.Context,
	ids []string,
	patch BulkPatch,
) (int64, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Status != nil {
		set("status", *patch.Status)
		sets = append(sets,
			fmt.Sprintf("processed = ($%d != 'pending')", len(args)))
	}
	if patch.CaseType != nil {
		set("case_type", *patch.CaseType)
	}
	if patch.Campaign != nil {
		set("campaign", *patch.Campaign)
	}
	if patch.OwnerID != nil {
		set("ownerid", *patch.OwnerID)
	}

	if len(sets) == 0 {
		return 0, fmt.Errorf("empty patch: %w", core.ErrInvalidInput)
	}
	sets = append(sets, "updated_at = NOW()")

	query, inArgs, err := sqlx.In(
		fmt.Sprintf("UPDATE submissions SET %s WHERE id IN (?)",
			strings.Join(sets, ", ")),
		ids,
	)
	if err != nil {
		return 0, fmt.Errorf("bulk update: %w", err)
	}

	// sqlx.In emits ? placeholders for the id list; renumber them after
	// the patch's positional args.
	for i := range inArgs {
		query = strings.Replace(query, "?",
			fmt.Sprintf("$%d", len(args)+i+1), 1)
	}
	args = append(args, inArgs...)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk update: %w", err)
	}

	modified, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk update: %w", err)
	}

	return modified, nil
}

func (r *repository) SoftDelete(ctx context.Context, id, actorID string) error {
	query := `
		UPDATE submissions
		SET status = 'deleted', deleted_at = NOW(), deleted_by = $2,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, actorID)
	if err != nil {
		return fmt.Errorf("soft delete: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("soft delete: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Recent(
	ctx context.Context,
	limit int,
) ([]Summary, error) {
	summaries := []Summary{}
	err := r.db.SelectContext(ctx, &summaries, `
		SELECT id, fname, lname, email, geo_city, geo_region, geo_country,
		       status, quality_score, submission_date
		FROM submissions
		WHERE status != 'deleted'
		ORDER BY submission_date DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent submissions: %w", err)
	}

	return summaries, nil
}

func (r *repository) LocationStats(ctx context.Context) ([]LocationStat, error) {
	stats := []LocationStat{}
	err := r.db.SelectContext(ctx, &stats, `
		SELECT geo_country, geo_region, geo_city,
		       MIN(geo_latitude)  AS latitude,
		       MIN(geo_longitude) AS longitude,
		       COUNT(*) AS count,
		       COALESCE(AVG(quality_score), 0) AS avg_quality
		FROM submissions
		WHERE geo_country != 'Unknown' AND status != 'deleted'
		GROUP BY geo_country, geo_region, geo_city
		ORDER BY count DESC
		LIMIT 100`)
	if err != nil {
		return nil, fmt.Errorf("location stats: %w", err)
	}

	return stats, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
