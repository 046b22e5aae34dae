package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/housecheck/inspections-service/internal/models"
)

/* ───────────── public interface ───────────── */

type SubtaskRepository interface {
	Create(ctx context.Context, s *models.Subtask) error
	CreateMany(ctx context.Context, list []models.Subtask) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Subtask, error)
	ListByInspectionID(ctx context.Context, inspectionID uuid.UUID) ([]*models.Subtask, error)
	ListByInspectionIDs(ctx context.Context, inspectionIDs []uuid.UUID) ([]*models.Subtask, error)

	Update(ctx context.Context, s *models.Subtask) error
	UpdateIfVersion(ctx context.Context, s *models.Subtask, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Subtask) error) error

	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByInspectionIDs removes subtasks referencing any of the
	// given inspections through either foreign key: the current owner
	// (inspection_id) or the lineage anchor (original_inspection_id).
	DeleteByInspectionIDs(ctx context.Context, inspectionIDs []uuid.UUID) (int64, error)
}

/* ───────────── implementation ───────────── */

type subtaskRepo struct {
	*BaseVersionedRepo[*models.Subtask]
	db DB
}

func NewSubtaskRepository(db DB) SubtaskRepository {
	r := &subtaskRepo{db: db}
	selectStmt := baseSelectSubtask() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanSubtask)
	return r
}

/* ---------- create ---------- */

func (r *subtaskRepo) Create(ctx context.Context, s *models.Subtask) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO subtasks (
			id, inspection_id, original_inspection_id, description,
			assigned_user_ids, completed, status, attachment_url,
			inventory_type_id, quantity,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW(), 1)
	`,
		s.ID, s.InspectionID, s.OriginalInspectionID, s.Description,
		s.AssignedUserIDs, s.Completed, s.Status, s.AttachmentURL,
		s.InventoryTypeID, s.Quantity,
	)
	return err
}

func (r *subtaskRepo) CreateMany(ctx context.Context, list []models.Subtask) error {
	for i := range list {
		if err := r.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

/* ---------- reads ---------- */

func (r *subtaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Subtask, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *subtaskRepo) ListByInspectionID(ctx context.Context, inspectionID uuid.UUID) ([]*models.Subtask, error) {
	rows, err := r.db.Query(ctx, baseSelectSubtask()+" WHERE inspection_id=$1 ORDER BY created_at", inspectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubtasks(rows)
}

func (r *subtaskRepo) ListByInspectionIDs(ctx context.Context, inspectionIDs []uuid.UUID) ([]*models.Subtask, error) {
	if len(inspectionIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, baseSelectSubtask()+" WHERE inspection_id = ANY($1) ORDER BY created_at", inspectionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubtasks(rows)
}

/* ---------- update / delete ---------- */

func (r *subtaskRepo) Update(ctx context.Context, s *models.Subtask) error {
	_, err := r.update(ctx, s, false, 0)
	return err
}

func (r *subtaskRepo) UpdateIfVersion(ctx context.Context, s *models.Subtask, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, s, true, expected)
}

func (r *subtaskRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Subtask) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *subtaskRepo) update(ctx context.Context, s *models.Subtask, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE subtasks SET
			description=$1, assigned_user_ids=$2, completed=$3, status=$4,
			attachment_url=$5, inventory_type_id=$6, quantity=$7, updated_at=NOW()
	`
	args := []any{
		s.Description, s.AssignedUserIDs, s.Completed, s.Status,
		s.AttachmentURL, s.InventoryTypeID, s.Quantity,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$8 AND row_version=$9`
		args = append(args, s.ID, expected)
	} else {
		sql += ` WHERE id=$8`
		args = append(args, s.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *subtaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM subtasks WHERE id=$1`, id)
	return err
}

func (r *subtaskRepo) DeleteByInspectionIDs(ctx context.Context, inspectionIDs []uuid.UUID) (int64, error) {
	if len(inspectionIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `
		DELETE FROM subtasks
		WHERE inspection_id = ANY($1) OR original_inspection_id = ANY($1)
	`, inspectionIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

/* ---------- internals ---------- */

func baseSelectSubtask() string {
	return `
		SELECT
			id, inspection_id, original_inspection_id, description,
			assigned_user_ids, completed, status, attachment_url,
			inventory_type_id, quantity,
			created_at, updated_at, row_version
		FROM subtasks
	`
}

func scanSubtask(row pgx.Row) (*models.Subtask, error) {
	var s models.Subtask
	var status string
	var assigned []uuid.UUID

	err := row.Scan(
		&s.ID, &s.InspectionID, &s.OriginalInspectionID, &s.Description,
		&assigned, &s.Completed, &status, &s.AttachmentURL,
		&s.InventoryTypeID, &s.Quantity,
		&s.CreatedAt, &s.UpdatedAt, &s.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	s.AssignedUserIDs = assigned
	s.Status = models.SubtaskStatusType(status)
	return &s, nil
}

func scanSubtasks(rows pgx.Rows) ([]*models.Subtask, error) {
	var out []*models.Subtask
	for rows.Next() {
		s, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
