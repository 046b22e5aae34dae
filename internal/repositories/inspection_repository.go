package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/housecheck/inspections-service/internal/models"
)

/* ───────────── public interface ───────────── */

type InspectionRepository interface {
	Create(ctx context.Context, i *models.Inspection) error
	// CreateIfNotExists inserts unless an occurrence for the same
	// series root and date already exists (unique index on
	// (parent_inspection_id, scheduled_date)). Returns whether a row
	// was actually inserted.
	CreateIfNotExists(ctx context.Context, i *models.Inspection) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID, from, to *time.Time) ([]*models.Inspection, error)
	ListForAnalytics(ctx context.Context, propID uuid.UUID, from, to *time.Time) ([]*models.Inspection, error)
	ListConnected(ctx context.Context, rootID, excludeID uuid.UUID) ([]*models.Inspection, error)
	ListSeriesRoots(ctx context.Context) ([]*models.Inspection, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]*models.Inspection, error)

	ListIDsByPropertyID(ctx context.Context, propID uuid.UUID) ([]uuid.UUID, error)
	ListIDsByUnitID(ctx context.Context, unitID uuid.UUID) ([]uuid.UUID, error)

	Update(ctx context.Context, i *models.Inspection) error
	UpdateIfVersion(ctx context.Context, i *models.Inspection, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Inspection) error) error

	Archive(ctx context.Context, ids []uuid.UUID) (int64, error)
	MarkReminded(ctx context.Context, id uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

/* ───────────── implementation ───────────── */

type inspectionRepo struct {
	*BaseVersionedRepo[*models.Inspection]
	db DB
}

func NewInspectionRepository(db DB) InspectionRepository {
	r := &inspectionRepo{db: db}
	selectStmt := baseSelectInspection() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanInspection)
	return r
}

/* ---------- create ---------- */

func (r *inspectionRepo) Create(ctx context.Context, i *models.Inspection) error {
	_, err := r.db.Exec(ctx, insertInspectionSQL, insertInspectionArgs(i)...)
	return err
}

func (r *inspectionRepo) CreateIfNotExists(ctx context.Context, i *models.Inspection) (bool, error) {
	tag, err := r.db.Exec(ctx,
		insertInspectionSQL+` ON CONFLICT (parent_inspection_id, scheduled_date) DO NOTHING`,
		insertInspectionArgs(i)...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const insertInspectionSQL = `
	INSERT INTO inspections (
		id, property_id, unit_id, inspection_type,
		scheduled_date, scheduled_time, parent_inspection_id,
		frequency, skip_holidays,
		completed, completed_at, attachment_url, archived_at, reminded_at,
		created_at, updated_at, row_version
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14, NOW(), NOW(), 1)`

func insertInspectionArgs(i *models.Inspection) []any {
	return []any{
		i.ID, i.PropertyID, i.UnitID, i.InspectionType,
		i.ScheduledDate, i.ScheduledTime, i.ParentInspectionID,
		i.Frequency, i.SkipHolidays,
		i.Completed, i.CompletedAt, i.AttachmentURL, i.ArchivedAt, i.RemindedAt,
	}
}

/* ---------- reads ---------- */

func (r *inspectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *inspectionRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID, from, to *time.Time) ([]*models.Inspection, error) {
	sql := baseSelectInspection() + " WHERE property_id=$1 AND archived_at IS NULL"
	args := []any{propID}
	if from != nil {
		args = append(args, *from)
		sql += " AND scheduled_date >= $2"
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			sql += " AND scheduled_date <= $3"
		} else {
			sql += " AND scheduled_date <= $2"
		}
	}
	sql += " ORDER BY scheduled_date, created_at"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInspections(rows)
}

// ListForAnalytics includes archived rows; that is the whole point of
// the keep-for-analytics archive.
func (r *inspectionRepo) ListForAnalytics(ctx context.Context, propID uuid.UUID, from, to *time.Time) ([]*models.Inspection, error) {
	sql := baseSelectInspection() + " WHERE property_id=$1"
	args := []any{propID}
	if from != nil {
		args = append(args, *from)
		sql += " AND scheduled_date >= $2"
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			sql += " AND scheduled_date <= $3"
		} else {
			sql += " AND scheduled_date <= $2"
		}
	}
	sql += " ORDER BY scheduled_date"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInspections(rows)
}

func (r *inspectionRepo) ListConnected(ctx context.Context, rootID, excludeID uuid.UUID) ([]*models.Inspection, error) {
	rows, err := r.db.Query(ctx, baseSelectInspection()+`
		WHERE (parent_inspection_id=$1 OR id=$1) AND id<>$2 AND archived_at IS NULL
		ORDER BY scheduled_date`, rootID, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInspections(rows)
}

func (r *inspectionRepo) ListSeriesRoots(ctx context.Context) ([]*models.Inspection, error) {
	rows, err := r.db.Query(ctx, baseSelectInspection()+`
		WHERE parent_inspection_id IS NULL AND frequency<>$1 AND archived_at IS NULL`,
		models.InspectionFreqNone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInspections(rows)
}

func (r *inspectionRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]*models.Inspection, error) {
	rows, err := r.db.Query(ctx, baseSelectInspection()+`
		WHERE completed=FALSE AND archived_at IS NULL AND reminded_at IS NULL
		AND scheduled_date < $1`, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInspections(rows)
}

func (r *inspectionRepo) ListIDsByPropertyID(ctx context.Context, propID uuid.UUID) ([]uuid.UUID, error) {
	return r.listIDs(ctx, `SELECT id FROM inspections WHERE property_id=$1`, propID)
}

func (r *inspectionRepo) ListIDsByUnitID(ctx context.Context, unitID uuid.UUID) ([]uuid.UUID, error) {
	return r.listIDs(ctx, `SELECT id FROM inspections WHERE unit_id=$1`, unitID)
}

func (r *inspectionRepo) listIDs(ctx context.Context, sql string, arg any) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

/* ---------- update / delete ---------- */

func (r *inspectionRepo) Update(ctx context.Context, i *models.Inspection) error {
	_, err := r.update(ctx, i, false, 0)
	return err
}

func (r *inspectionRepo) UpdateIfVersion(ctx context.Context, i *models.Inspection, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, i, true, expected)
}

func (r *inspectionRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Inspection) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *inspectionRepo) update(ctx context.Context, i *models.Inspection, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE inspections SET
			unit_id=$1, inspection_type=$2, scheduled_date=$3, scheduled_time=$4,
			frequency=$5, skip_holidays=$6,
			completed=$7, completed_at=$8, attachment_url=$9,
			archived_at=$10, reminded_at=$11, updated_at=NOW()
	`
	args := []any{
		i.UnitID, i.InspectionType, i.ScheduledDate, i.ScheduledTime,
		i.Frequency, i.SkipHolidays,
		i.Completed, i.CompletedAt, i.AttachmentURL,
		i.ArchivedAt, i.RemindedAt,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$12 AND row_version=$13`
		args = append(args, i.ID, expected)
	} else {
		sql += ` WHERE id=$12`
		args = append(args, i.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *inspectionRepo) Archive(ctx context.Context, ids []uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE inspections SET archived_at=NOW(), updated_at=NOW() WHERE id = ANY($1) AND archived_at IS NULL`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *inspectionRepo) MarkReminded(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE inspections SET reminded_at=NOW(), updated_at=NOW() WHERE id=$1`, id)
	return err
}

func (r *inspectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM inspections WHERE id=$1`, id)
	return err
}

func (r *inspectionRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM inspections WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

/* ---------- internals ---------- */

func baseSelectInspection() string {
	return `
		SELECT
			id, property_id, unit_id, inspection_type,
			scheduled_date, scheduled_time, parent_inspection_id,
			frequency, skip_holidays,
			completed, completed_at, attachment_url, archived_at, reminded_at,
			created_at, updated_at, row_version
		FROM inspections
	`
}

func scanInspection(row pgx.Row) (*models.Inspection, error) {
	var i models.Inspection
	var freq string

	err := row.Scan(
		&i.ID, &i.PropertyID, &i.UnitID, &i.InspectionType,
		&i.ScheduledDate, &i.ScheduledTime, &i.ParentInspectionID,
		&freq, &i.SkipHolidays,
		&i.Completed, &i.CompletedAt, &i.AttachmentURL, &i.ArchivedAt, &i.RemindedAt,
		&i.CreatedAt, &i.UpdatedAt, &i.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	i.Frequency = models.InspectionFrequencyType(freq)
	return &i, nil
}

func scanInspections(rows pgx.Rows) ([]*models.Inspection, error) {
	var out []*models.Inspection
	for rows.Next() {
		i, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
