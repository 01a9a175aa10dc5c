package repo

import (
	"context"

	"gorm.io/gorm"

	"leasehub/internal/domain"
)

func (r *GormStore) ListRequests(ctx context.Context) ([]domain.Request, error) {
	return list[domain.Request](ctx, r.db, "")
}

func (r *GormStore) GetRequest(ctx context.Context, id string) (*domain.Request, error) {
	return first[domain.Request](ctx, r.db, "id = ?", id)
}

func (r *GormStore) CreateRequest(ctx context.Context, req *domain.Request) error {
	if req.LocalID != nil {
		l, err := r.GetLocal(ctx, *req.LocalID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.Validation("local %s does not exist", *req.LocalID)
		}
	}
	now := r.now()
	req.ID = r.newID()
	req.Status = domain.RequestPending
	req.Response = nil
	req.CreatedAt, req.UpdatedAt = now, now
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *GormStore) UpdateRequest(ctx context.Context, id string, p domain.RequestPatch) (*domain.Request, error) {
	var out *domain.Request
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := first[domain.Request](ctx, tx, "id = ?", id)
		if err != nil || req == nil {
			return err
		}
		p.Apply(req)
		req.UpdatedAt = r.now()
		if err := tx.Save(req).Error; err != nil {
			return err
		}
		out = req
		return nil
	})
	return out, err
}
