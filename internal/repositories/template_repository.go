package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/housecheck/inspections-service/internal/models"
)

/* ───────────── public interface ───────────── */

type TemplateRepository interface {
	Create(ctx context.Context, t *models.InspectionTemplate) error
	CreateRoom(ctx context.Context, room *models.TemplateRoom) error
	CreateItem(ctx context.Context, item *models.TemplateItem) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.InspectionTemplate, error)
	GetByInspectionType(ctx context.Context, inspectionType string) (*models.InspectionTemplate, error)
	List(ctx context.Context) ([]*models.InspectionTemplate, error)

	ListRooms(ctx context.Context, templateID uuid.UUID) ([]*models.TemplateRoom, error)
	ListItems(ctx context.Context, roomID uuid.UUID) ([]*models.TemplateItem, error)

	LinkProperty(ctx context.Context, propertyID, templateID uuid.UUID) error
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.InspectionTemplate, error)
	DeletePropertyLinks(ctx context.Context, propertyID uuid.UUID) (int64, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type templateRepo struct {
	db DB
}

func NewTemplateRepository(db DB) TemplateRepository {
	return &templateRepo{db: db}
}

/* ---------- create ---------- */

func (r *templateRepo) Create(ctx context.Context, t *models.InspectionTemplate) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inspection_templates (id, name, inspection_type, created_at)
		VALUES ($1,$2,$3, NOW())
	`, t.ID, t.Name, t.InspectionType)
	return err
}

func (r *templateRepo) CreateRoom(ctx context.Context, room *models.TemplateRoom) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO template_rooms (id, template_id, name, position)
		VALUES ($1,$2,$3,$4)
	`, room.ID, room.TemplateID, room.Name, room.Position)
	return err
}

func (r *templateRepo) CreateItem(ctx context.Context, item *models.TemplateItem) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO template_items (id, room_id, description, position, inventory_type_id, quantity)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, item.ID, item.RoomID, item.Description, item.Position, item.InventoryTypeID, item.Quantity)
	return err
}

/* ---------- reads ---------- */

func (r *templateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InspectionTemplate, error) {
	row := r.db.QueryRow(ctx, baseSelectTemplate()+" WHERE id=$1", id)
	return scanTemplate(row)
}

func (r *templateRepo) GetByInspectionType(ctx context.Context, inspectionType string) (*models.InspectionTemplate, error) {
	row := r.db.QueryRow(ctx,
		baseSelectTemplate()+" WHERE inspection_type=$1 ORDER BY created_at LIMIT 1", inspectionType)
	return scanTemplate(row)
}

func (r *templateRepo) List(ctx context.Context) ([]*models.InspectionTemplate, error) {
	rows, err := r.db.Query(ctx, baseSelectTemplate()+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTemplates(rows)
}

func (r *templateRepo) ListRooms(ctx context.Context, templateID uuid.UUID) ([]*models.TemplateRoom, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, template_id, name, position
		FROM template_rooms WHERE template_id=$1 ORDER BY position
	`, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TemplateRoom
	for rows.Next() {
		var room models.TemplateRoom
		if err := rows.Scan(&room.ID, &room.TemplateID, &room.Name, &room.Position); err != nil {
			return nil, err
		}
		out = append(out, &room)
	}
	return out, rows.Err()
}

func (r *templateRepo) ListItems(ctx context.Context, roomID uuid.UUID) ([]*models.TemplateItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, room_id, description, position, inventory_type_id, quantity
		FROM template_items WHERE room_id=$1 ORDER BY position
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TemplateItem
	for rows.Next() {
		var item models.TemplateItem
		if err := rows.Scan(&item.ID, &item.RoomID, &item.Description, &item.Position,
			&item.InventoryTypeID, &item.Quantity); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

/* ---------- property links ---------- */

func (r *templateRepo) LinkProperty(ctx context.Context, propertyID, templateID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO property_templates (property_id, template_id)
		VALUES ($1,$2) ON CONFLICT DO NOTHING
	`, propertyID, templateID)
	return err
}

func (r *templateRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.InspectionTemplate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.name, t.inspection_type, t.created_at
		FROM inspection_templates t
		JOIN property_templates pt ON pt.template_id = t.id
		WHERE pt.property_id=$1 ORDER BY t.name
	`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTemplates(rows)
}

func (r *templateRepo) DeletePropertyLinks(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM property_templates WHERE property_id=$1`, propertyID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

/* ---------- delete ---------- */

func (r *templateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// rooms/items cascade via FK; the link rows do not.
	if _, err := r.db.Exec(ctx, `DELETE FROM property_templates WHERE template_id=$1`, id); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM inspection_templates WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectTemplate() string {
	return `SELECT id, name, inspection_type, created_at FROM inspection_templates`
}

func scanTemplate(row pgx.Row) (*models.InspectionTemplate, error) {
	var t models.InspectionTemplate
	if err := row.Scan(&t.ID, &t.Name, &t.InspectionType, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func scanTemplates(rows pgx.Rows) ([]*models.InspectionTemplate, error) {
	var out []*models.InspectionTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
