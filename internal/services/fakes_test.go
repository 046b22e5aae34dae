package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/repositories"
)

var okTag = pgconn.CommandTag("UPDATE 1")

/* ---------- properties ---------- */

type fakePropertyRepo struct {
	rows []*models.Property
}

func (f *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	cp := *p
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	for _, p := range f.rows {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePropertyRepo) ListByManagerID(_ context.Context, managerID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range f.rows {
		if p.ManagerID == managerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) ListAll(_ context.Context) ([]*models.Property, error) {
	return f.rows, nil
}

func (f *fakePropertyRepo) Update(_ context.Context, p *models.Property) error {
	for i, row := range f.rows {
		if row.ID == p.ID {
			cp := *p
			f.rows[i] = &cp
			return nil
		}
	}
	return errors.New("missing row")
}

func (f *fakePropertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, _ int64) (pgconn.CommandTag, error) {
	return okTag, f.Update(ctx, p)
}

func (f *fakePropertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	p, err := f.GetByID(ctx, id)
	if err != nil || p == nil {
		return errors.New("missing row")
	}
	if err := mutate(p); err != nil {
		return err
	}
	return f.Update(ctx, p)
}

func (f *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

/* ---------- units ---------- */

type fakeUnitRepo struct {
	rows []*models.Unit
}

func (f *fakeUnitRepo) Create(_ context.Context, u *models.Unit) error {
	cp := *u
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Unit, error) {
	for _, u := range f.rows {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUnitRepo) ListByPropertyID(_ context.Context, propID uuid.UUID) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range f.rows {
		if u.PropertyID == propID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUnitRepo) Update(_ context.Context, u *models.Unit) error {
	for i, row := range f.rows {
		if row.ID == u.ID {
			cp := *u
			f.rows[i] = &cp
			return nil
		}
	}
	return errors.New("missing row")
}

func (f *fakeUnitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, _ int64) (pgconn.CommandTag, error) {
	return okTag, f.Update(ctx, u)
}

func (f *fakeUnitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error {
	u, err := f.GetByID(ctx, id)
	if err != nil || u == nil {
		return errors.New("missing row")
	}
	if err := mutate(u); err != nil {
		return err
	}
	return f.Update(ctx, u)
}

func (f *fakeUnitRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeUnitRepo) DeleteByPropertyID(_ context.Context, propID uuid.UUID) (int64, error) {
	var kept []*models.Unit
	var n int64
	for _, u := range f.rows {
		if u.PropertyID == propID {
			n++
		} else {
			kept = append(kept, u)
		}
	}
	f.rows = kept
	return n, nil
}

/* ---------- inspections ---------- */

type fakeInspectionRepo struct {
	rows []*models.Inspection
}

func (f *fakeInspectionRepo) Create(_ context.Context, i *models.Inspection) error {
	cp := *i
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeInspectionRepo) CreateIfNotExists(ctx context.Context, i *models.Inspection) (bool, error) {
	for _, row := range f.rows {
		if row.ParentInspectionID != nil && i.ParentInspectionID != nil &&
			*row.ParentInspectionID == *i.ParentInspectionID &&
			row.ScheduledDate.Equal(i.ScheduledDate) {
			return false, nil
		}
	}
	return true, f.Create(ctx, i)
}

func (f *fakeInspectionRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Inspection, error) {
	for _, row := range f.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInspectionRepo) ListByPropertyID(_ context.Context, propID uuid.UUID, _, _ *time.Time) ([]*models.Inspection, error) {
	var out []*models.Inspection
	for _, row := range f.rows {
		if row.PropertyID == propID && row.ArchivedAt == nil {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeInspectionRepo) ListForAnalytics(_ context.Context, propID uuid.UUID, _, _ *time.Time) ([]*models.Inspection, error) {
	var out []*models.Inspection
	for _, row := range f.rows {
		if row.PropertyID == propID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeInspectionRepo) ListConnected(_ context.Context, rootID, excludeID uuid.UUID) ([]*models.Inspection, error) {
	var out []*models.Inspection
	for _, row := range f.rows {
		inSeries := row.ID == rootID ||
			(row.ParentInspectionID != nil && *row.ParentInspectionID == rootID)
		if inSeries && row.ID != excludeID && row.ArchivedAt == nil {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeInspectionRepo) ListSeriesRoots(_ context.Context) ([]*models.Inspection, error) {
	var out []*models.Inspection
	for _, row := range f.rows {
		if row.ParentInspectionID == nil && row.Frequency != models.InspectionFreqNone && row.ArchivedAt == nil {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeInspectionRepo) ListOverdue(_ context.Context, asOf time.Time) ([]*models.Inspection, error) {
	var out []*models.Inspection
	for _, row := range f.rows {
		if !row.Completed && row.ArchivedAt == nil && row.RemindedAt == nil && row.ScheduledDate.Before(asOf) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeInspectionRepo) ListIDsByPropertyID(_ context.Context, propID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, row := range f.rows {
		if row.PropertyID == propID {
			out = append(out, row.ID)
		}
	}
	return out, nil
}

func (f *fakeInspectionRepo) ListIDsByUnitID(_ context.Context, unitID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, row := range f.rows {
		if row.UnitID != nil && *row.UnitID == unitID {
			out = append(out, row.ID)
		}
	}
	return out, nil
}

func (f *fakeInspectionRepo) Update(_ context.Context, i *models.Inspection) error {
	for idx, row := range f.rows {
		if row.ID == i.ID {
			cp := *i
			f.rows[idx] = &cp
			return nil
		}
	}
	return errors.New("missing row")
}

func (f *fakeInspectionRepo) UpdateIfVersion(ctx context.Context, i *models.Inspection, _ int64) (pgconn.CommandTag, error) {
	return okTag, f.Update(ctx, i)
}

func (f *fakeInspectionRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Inspection) error) error {
	i, err := f.GetByID(ctx, id)
	if err != nil || i == nil {
		return errors.New("missing row")
	}
	if err := mutate(i); err != nil {
		return err
	}
	return f.Update(ctx, i)
}

func (f *fakeInspectionRepo) Archive(_ context.Context, ids []uuid.UUID) (int64, error) {
	now := time.Now()
	var n int64
	for _, row := range f.rows {
		for _, id := range ids {
			if row.ID == id && row.ArchivedAt == nil {
				row.ArchivedAt = &now
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeInspectionRepo) MarkReminded(_ context.Context, id uuid.UUID) error {
	now := time.Now()
	for _, row := range f.rows {
		if row.ID == id {
			row.RemindedAt = &now
		}
	}
	return nil
}

func (f *fakeInspectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := f.DeleteByIDs(ctx, []uuid.UUID{id})
	return err
}

func (f *fakeInspectionRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	drop := map[uuid.UUID]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	var kept []*models.Inspection
	var n int64
	for _, row := range f.rows {
		if drop[row.ID] {
			n++
		} else {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return n, nil
}

/* ---------- subtasks ---------- */

type fakeSubtaskRepo struct {
	rows       []*models.Subtask
	failCreate bool
}

func (f *fakeSubtaskRepo) Create(_ context.Context, s *models.Subtask) error {
	if f.failCreate {
		return errors.New("insert refused")
	}
	cp := *s
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeSubtaskRepo) CreateMany(ctx context.Context, list []models.Subtask) error {
	for i := range list {
		if err := f.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeSubtaskRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Subtask, error) {
	for _, row := range f.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSubtaskRepo) ListByInspectionID(_ context.Context, inspectionID uuid.UUID) ([]*models.Subtask, error) {
	var out []*models.Subtask
	for _, row := range f.rows {
		if row.InspectionID == inspectionID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeSubtaskRepo) ListByInspectionIDs(ctx context.Context, inspectionIDs []uuid.UUID) ([]*models.Subtask, error) {
	var out []*models.Subtask
	for _, id := range inspectionIDs {
		list, _ := f.ListByInspectionID(ctx, id)
		out = append(out, list...)
	}
	return out, nil
}

func (f *fakeSubtaskRepo) Update(_ context.Context, s *models.Subtask) error {
	for idx, row := range f.rows {
		if row.ID == s.ID {
			cp := *s
			f.rows[idx] = &cp
			return nil
		}
	}
	return errors.New("missing row")
}

func (f *fakeSubtaskRepo) UpdateIfVersion(ctx context.Context, s *models.Subtask, _ int64) (pgconn.CommandTag, error) {
	return okTag, f.Update(ctx, s)
}

func (f *fakeSubtaskRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Subtask) error) error {
	s, err := f.GetByID(ctx, id)
	if err != nil || s == nil {
		return errors.New("missing row")
	}
	if err := mutate(s); err != nil {
		return err
	}
	return f.Update(ctx, s)
}

func (f *fakeSubtaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeSubtaskRepo) DeleteByInspectionIDs(_ context.Context, inspectionIDs []uuid.UUID) (int64, error) {
	drop := map[uuid.UUID]bool{}
	for _, id := range inspectionIDs {
		drop[id] = true
	}
	var kept []*models.Subtask
	var n int64
	for _, row := range f.rows {
		if drop[row.InspectionID] || drop[row.OriginalInspectionID] {
			n++
		} else {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return n, nil
}

/* ---------- templates ---------- */

type fakeTemplateRepo struct {
	templates []*models.InspectionTemplate
	rooms     []*models.TemplateRoom
	items     []*models.TemplateItem
	links     map[uuid.UUID][]uuid.UUID // property -> templates

	failItemsForRoom map[uuid.UUID]bool
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{
		links:            map[uuid.UUID][]uuid.UUID{},
		failItemsForRoom: map[uuid.UUID]bool{},
	}
}

func (f *fakeTemplateRepo) Create(_ context.Context, t *models.InspectionTemplate) error {
	cp := *t
	f.templates = append(f.templates, &cp)
	return nil
}

func (f *fakeTemplateRepo) CreateRoom(_ context.Context, room *models.TemplateRoom) error {
	cp := *room
	f.rooms = append(f.rooms, &cp)
	return nil
}

func (f *fakeTemplateRepo) CreateItem(_ context.Context, item *models.TemplateItem) error {
	cp := *item
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id uuid.UUID) (*models.InspectionTemplate, error) {
	for _, t := range f.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTemplateRepo) GetByInspectionType(_ context.Context, inspectionType string) (*models.InspectionTemplate, error) {
	for _, t := range f.templates {
		if t.InspectionType == inspectionType {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTemplateRepo) List(_ context.Context) ([]*models.InspectionTemplate, error) {
	return f.templates, nil
}

func (f *fakeTemplateRepo) ListRooms(_ context.Context, templateID uuid.UUID) ([]*models.TemplateRoom, error) {
	var out []*models.TemplateRoom
	for _, r := range f.rooms {
		if r.TemplateID == templateID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTemplateRepo) ListItems(_ context.Context, roomID uuid.UUID) ([]*models.TemplateItem, error) {
	if f.failItemsForRoom[roomID] {
		return nil, errors.New("room items unavailable")
	}
	var out []*models.TemplateItem
	for _, i := range f.items {
		if i.RoomID == roomID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeTemplateRepo) LinkProperty(_ context.Context, propertyID, templateID uuid.UUID) error {
	f.links[propertyID] = append(f.links[propertyID], templateID)
	return nil
}

func (f *fakeTemplateRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.InspectionTemplate, error) {
	var out []*models.InspectionTemplate
	for _, tid := range f.links[propertyID] {
		t, _ := f.GetByID(ctx, tid)
		if t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTemplateRepo) DeletePropertyLinks(_ context.Context, propertyID uuid.UUID) (int64, error) {
	n := int64(len(f.links[propertyID]))
	delete(f.links, propertyID)
	return n, nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range f.templates {
		if t.ID == id {
			f.templates = append(f.templates[:i], f.templates[i+1:]...)
			return nil
		}
	}
	return nil
}

/* ---------- profiles ---------- */

type fakeProfileRepo struct {
	rows []*models.Profile
}

func (f *fakeProfileRepo) Upsert(_ context.Context, p *models.Profile) error {
	for i, row := range f.rows {
		if row.ID == p.ID {
			cp := *p
			f.rows[i] = &cp
			return nil
		}
	}
	cp := *p
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	for _, row := range f.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Profile, error) {
	var out []*models.Profile
	for _, id := range ids {
		p, _ := f.GetByID(ctx, id)
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) List(_ context.Context) ([]*models.Profile, error) {
	return f.rows, nil
}

/* ---------- compile-time checks ---------- */

var (
	_ repositories.PropertyRepository   = (*fakePropertyRepo)(nil)
	_ repositories.UnitRepository       = (*fakeUnitRepo)(nil)
	_ repositories.InspectionRepository = (*fakeInspectionRepo)(nil)
	_ repositories.SubtaskRepository    = (*fakeSubtaskRepo)(nil)
	_ repositories.TemplateRepository   = (*fakeTemplateRepo)(nil)
	_ repositories.ProfileRepository    = (*fakeProfileRepo)(nil)
)
