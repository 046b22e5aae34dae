package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/housecheck/inspections-service/internal/models"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, p *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
}

type profileRepo struct {
	db DB
}

func NewProfileRepository(db DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Upsert(ctx context.Context, p *models.Profile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (id, full_name, email, phone, created_at)
		VALUES ($1,$2,$3,$4, NOW())
		ON CONFLICT (id) DO UPDATE SET full_name=$2, email=$3, phone=$4
	`, p.ID, p.FullName, p.Email, p.Phone)
	return err
}

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	row := r.db.QueryRow(ctx, baseSelectProfile()+" WHERE id=$1", id)
	return scanProfile(row)
}

func (r *profileRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, baseSelectProfile()+" WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func (r *profileRepo) List(ctx context.Context) ([]*models.Profile, error) {
	rows, err := r.db.Query(ctx, baseSelectProfile()+" ORDER BY full_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func baseSelectProfile() string {
	return `SELECT id, full_name, email, phone, created_at FROM profiles`
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	if err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func scanProfiles(rows pgx.Rows) ([]*models.Profile, error) {
	var out []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
