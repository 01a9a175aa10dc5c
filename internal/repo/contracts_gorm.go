package repo

import (
	"context"

	"gorm.io/gorm"

	"leasehub/internal/domain"
)

func (r *GormStore) ListContracts(ctx context.Context) ([]domain.Contract, error) {
	return list[domain.Contract](ctx, r.db, "")
}

func (r *GormStore) ListContractsByTenant(ctx context.Context, tenantID string) ([]domain.Contract, error) {
	return list[domain.Contract](ctx, r.db, "tenant_id = ?", tenantID)
}

func (r *GormStore) GetContract(ctx context.Context, id string) (*domain.Contract, error) {
	return first[domain.Contract](ctx, r.db, "id = ?", id)
}

func (r *GormStore) CreateContract(ctx context.Context, c *domain.Contract) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if l, err := first[domain.Local](ctx, tx, "id = ?", c.LocalID); err != nil {
			return err
		} else if l == nil {
			return domain.Validation("local %s does not exist", c.LocalID)
		}
		tenant, err := first[domain.User](ctx, tx, "id = ?", c.TenantID)
		if err != nil {
			return err
		}
		if tenant == nil {
			return domain.Validation("tenant %s does not exist", c.TenantID)
		}
		if tenant.Role != domain.RoleTenant {
			return domain.Validation("user %s is not a tenant", c.TenantID)
		}
		siblings, err := list[domain.Contract](ctx, tx, "local_id = ?", c.LocalID)
		if err != nil {
			return err
		}
		if err := domain.CheckContract(*c, siblings); err != nil {
			return err
		}
		now := r.now()
		c.ID = r.newID()
		c.CreatedAt, c.UpdatedAt = now, now
		return tx.Create(c).Error
	})
}

func (r *GormStore) UpdateContract(ctx context.Context, id string, p domain.ContractPatch) (*domain.Contract, error) {
	var out *domain.Contract
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := first[domain.Contract](ctx, tx, "id = ?", id)
		if err != nil || c == nil {
			return err
		}
		p.Apply(c)
		siblings, err := list[domain.Contract](ctx, tx, "local_id = ?", c.LocalID)
		if err != nil {
			return err
		}
		if err := domain.CheckContract(*c, siblings); err != nil {
			return err
		}
		c.UpdatedAt = r.now()
		if err := tx.Save(c).Error; err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}
