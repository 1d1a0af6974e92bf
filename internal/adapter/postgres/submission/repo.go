// Package submission implements the Submission repository using PostgreSQL.
// Form answers, metadata and the PDF config snapshot are stored as JSON text
// so stored rows stay readable even when a later payload shape changes.
package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/schulanmeldung/regform-backend/internal/adapter/postgres"
	"github.com/schulanmeldung/regform-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Repo provides submission persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new submission repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const submissionColumns = `id, form_key, form_version, name, email, status, data, metadata, pdf_config,
	created_at, updated_at, deleted_at, deleted`

const insertSQL = `
INSERT INTO submissions (form_key, form_version, name, email, status, data, metadata, pdf_config)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

const getByIDSQL = `
SELECT ` + submissionColumns + `
FROM submissions
WHERE id = $1 AND NOT deleted`

const updateStatusSQL = `
UPDATE submissions
SET status = $2, updated_at = now()
WHERE id = $1 AND NOT deleted AND status <> 'archived'`

const softDeleteSQL = `
UPDATE submissions
SET deleted = true, deleted_at = now(), updated_at = now()
WHERE id = $1 AND NOT deleted`

const hardDeleteOldSQL = `
DELETE FROM submissions
WHERE deleted AND deleted_at < $1`

const countDeletedBeforeSQL = `
SELECT count(*) FROM submissions
WHERE deleted AND deleted_at < $1`

const objectKeysDeletedBeforeSQL = `
SELECT a.object_key FROM submission_attachments a
JOIN submissions s ON s.id = a.submission_id
WHERE s.deleted AND s.deleted_at < $1 AND a.object_key <> ''
ORDER BY a.id`

const existsSQL = `SELECT status FROM submissions WHERE id = $1 AND NOT deleted`

const insertAttachmentSQL = `
INSERT INTO submission_attachments (submission_id, field, filename, object_key, url, content_type, size)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const attachmentsSQL = `
SELECT field, filename, object_key, url, content_type, size
FROM submission_attachments
WHERE submission_id = $1
ORDER BY id`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert stores a new submission with status "new" and returns its id.
// Attachments, if any, are written in the same statement batch; callers that
// need atomicity run Insert inside TxManager.RunInTx.
func (r *Repo) Insert(ctx context.Context, in domain.NewSubmission) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	data, err := json.Marshal(in.Data)
	if err != nil {
		return 0, fmt.Errorf("marshal data: %w", err)
	}
	meta, err := json.Marshal(in.Metadata)
	if err != nil {
		return 0, fmt.Errorf("marshal metadata: %w", err)
	}
	var pdfCfg *string
	if in.PDFConfig != nil {
		b, err := json.Marshal(in.PDFConfig)
		if err != nil {
			return 0, fmt.Errorf("marshal pdf config: %w", err)
		}
		s := string(b)
		pdfCfg = &s
	}

	var id int64
	err = querier.QueryRow(ctx, insertSQL,
		in.FormKey, in.FormVersion, in.Name, in.Email, string(domain.StatusNew),
		string(data), string(meta), pdfCfg,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "submission", "new")
	}

	if len(in.Attachments) > 0 {
		if err := r.AddAttachments(ctx, id, in.Attachments); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// AddAttachments records relayed uploads for a submission.
func (r *Repo) AddAttachments(ctx context.Context, id int64, atts []domain.Attachment) error {
	if len(atts) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, a := range atts {
		batch.Queue(insertAttachmentSQL, id, a.Field, a.Filename, a.ObjectKey, a.URL, a.ContentType, a.Size)
	}

	br := querier.SendBatch(ctx, batch)
	defer br.Close()

	for range atts {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "submission_attachment", id)
		}
	}

	return nil
}

// UpdateStatus sets a new status. Archived submissions cannot change:
// the call fails with domain.ErrArchived.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateStatusSQL, id, string(status))
	if err != nil {
		return postgres.MapError(err, "submission", id)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Nothing updated: either the row is gone or it is archived.
	var current string
	if err := querier.QueryRow(ctx, existsSQL, id).Scan(&current); err != nil {
		return postgres.MapError(err, "submission", id)
	}
	return fmt.Errorf("submission %d: %w", id, domain.ErrArchived)
}

// SoftDelete flags a submission as deleted. Deleting an already deleted or
// missing submission returns domain.ErrNotFound.
func (r *Repo) SoftDelete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, softDeleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "submission", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("submission %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// HardDeleteOld physically removes submissions soft-deleted before
// threshold, together with their attachment rows. Returns the number of
// submissions removed.
func (r *Repo) HardDeleteOld(ctx context.Context, threshold time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, hardDeleteOldSQL, threshold)
	if err != nil {
		return 0, postgres.MapError(err, "submissions", "hard delete")
	}

	return tag.RowsAffected(), nil
}

// CountDeletedBefore reports how many rows HardDeleteOld would remove.
func (r *Repo) CountDeletedBefore(ctx context.Context, threshold time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n int64
	if err := querier.QueryRow(ctx, countDeletedBeforeSQL, threshold).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "submissions", "count deleted")
	}
	return n, nil
}

// ObjectKeysDeletedBefore lists the stored object keys of attachments that
// HardDeleteOld would remove.
func (r *Repo) ObjectKeysDeletedBefore(ctx context.Context, threshold time.Time) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, objectKeysDeletedBeforeSQL, threshold)
	if err != nil {
		return nil, postgres.MapError(err, "submission_attachments", "object keys")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan object key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "submission_attachments", "object keys")
	}

	return keys, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a submission by id. Soft-deleted submissions are reported
// as domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSubmission(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "submission", id)
	}

	return s, nil
}

// Attachments returns the uploads recorded for a submission in insert order.
func (r *Repo) Attachments(ctx context.Context, id int64) ([]domain.Attachment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, attachmentsSQL, id)
	if err != nil {
		return nil, postgres.MapError(err, "submission_attachment", id)
	}
	defer rows.Close()

	var out []domain.Attachment
	for rows.Next() {
		var a domain.Attachment
		if err := rows.Scan(&a.Field, &a.Filename, &a.ObjectKey, &a.URL, &a.ContentType, &a.Size); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "submission_attachment", id)
	}

	return out, nil
}

// List returns a page of submissions matching the filter, newest first,
// together with the total number of matches.
func (r *Repo) List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := buildWhere(f)
	limit, offset := clampPage(f.Limit, f.Offset)

	countSQL, countArgs, err := psql.Select("count(*)").From("submissions").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "submission", "list")
	}

	pageSQL, pageArgs, err := psql.Select(submissionColumns).
		From("submissions").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "submission", "list")
	}
	defer rows.Close()

	out := make([]domain.Submission, 0, limit)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "submission", "list")
	}

	return out, total, nil
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildWhere(f domain.SubmissionFilter) sq.And {
	where := sq.And{sq.Eq{"deleted": false}}
	if f.FormKey != "" {
		where = append(where, sq.Eq{"form_key": f.FormKey})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": string(*f.Status)})
	}
	if f.ActiveOnly {
		where = append(where, sq.NotEq{"status": string(domain.StatusArchived)})
	}
	return where
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var (
		s                  domain.Submission
		status             string
		data, meta         string
		pdfCfg             *string
		updatedAt, deleted *time.Time
	)

	err := row.Scan(
		&s.ID, &s.FormKey, &s.FormVersion, &s.Name, &s.Email, &status,
		&data, &meta, &pdfCfg,
		&s.CreatedAt, &updatedAt, &deleted, &s.Deleted,
	)
	if err != nil {
		return nil, err
	}

	s.Status = domain.Status(status)
	s.UpdatedAt = updatedAt
	s.DeletedAt = deleted
	s.Data = decodeFormData(data)
	s.Metadata = decodeFormData(meta)
	s.PDFConfig = decodePDFConfig(pdfCfg)

	return &s, nil
}

// decodeFormData never fails: rows written by older payload shapes or edited
// by hand decode to an empty mapping.
func decodeFormData(raw string) domain.FormData {
	fd, err := domain.ParseFormData([]byte(raw))
	if err != nil {
		return domain.FormData{}
	}
	return fd
}

func decodePDFConfig(raw *string) *domain.PDFConfig {
	if raw == nil || *raw == "" {
		return nil
	}
	var cfg domain.PDFConfig
	if err := json.Unmarshal([]byte(*raw), &cfg); err != nil {
		return nil
	}
	return &cfg
}
