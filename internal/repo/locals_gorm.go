package repo

import (
	"context"

	"gorm.io/gorm"

	"leasehub/internal/domain"
)

func (r *GormStore) ListLocals(ctx context.Context) ([]domain.Local, error) {
	return list[domain.Local](ctx, r.db, "")
}

func (r *GormStore) GetLocal(ctx context.Context, id string) (*domain.Local, error) {
	return first[domain.Local](ctx, r.db, "id = ?", id)
}

func (r *GormStore) CreateLocal(ctx context.Context, l *domain.Local) error {
	now := r.now()
	l.ID = r.newID()
	l.CreatedAt, l.UpdatedAt = now, now
	if l.Images == nil {
		l.Images = []string{}
	}
	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *GormStore) UpdateLocal(ctx context.Context, id string, p domain.LocalPatch) (*domain.Local, error) {
	var out *domain.Local
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := first[domain.Local](ctx, tx, "id = ?", id)
		if err != nil || l == nil {
			return err
		}
		p.Apply(l)
		l.UpdatedAt = r.now()
		if err := tx.Save(l).Error; err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

func (r *GormStore) DeleteLocal(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := first[domain.Local](ctx, tx, "id = ?", id)
		if err != nil || l == nil {
			return err
		}
		contracts, err := list[domain.Contract](ctx, tx, "local_id = ?", id)
		if err != nil {
			return err
		}
		if err := domain.CheckLocalRemovable(id, contracts); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Local{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
