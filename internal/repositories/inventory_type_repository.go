package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/housecheck/inspections-service/internal/models"
)

type InventoryTypeRepository interface {
	Create(ctx context.Context, it *models.InventoryType) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryType, error)
	List(ctx context.Context) ([]*models.InventoryType, error)
	Update(ctx context.Context, it *models.InventoryType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type inventoryTypeRepo struct {
	db DB
}

func NewInventoryTypeRepository(db DB) InventoryTypeRepository {
	return &inventoryTypeRepo{db: db}
}

func (r *inventoryTypeRepo) Create(ctx context.Context, it *models.InventoryType) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inventory_types (id, name, created_at) VALUES ($1,$2, NOW())
	`, it.ID, it.Name)
	return err
}

func (r *inventoryTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryType, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM inventory_types WHERE id=$1`, id)
	return scanInventoryType(row)
}

func (r *inventoryTypeRepo) List(ctx context.Context) ([]*models.InventoryType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM inventory_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.InventoryType
	for rows.Next() {
		it, err := scanInventoryType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *inventoryTypeRepo) Update(ctx context.Context, it *models.InventoryType) error {
	_, err := r.db.Exec(ctx, `UPDATE inventory_types SET name=$1 WHERE id=$2`, it.Name, it.ID)
	return err
}

func (r *inventoryTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM inventory_types WHERE id=$1`, id)
	return err
}

func scanInventoryType(row pgx.Row) (*models.InventoryType, error) {
	var it models.InventoryType
	if err := row.Scan(&it.ID, &it.Name, &it.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}
