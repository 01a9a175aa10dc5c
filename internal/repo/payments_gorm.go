package repo

import (
	"context"

	"leasehub/internal/domain"
)

func (r *GormStore) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return list[domain.Payment](ctx, r.db, "")
}

func (r *GormStore) ListPaymentsByContract(ctx context.Context, contractID string) ([]domain.Payment, error) {
	return list[domain.Payment](ctx, r.db, "contract_id = ?", contractID)
}

// ListPaymentsByTenant 用子查询按租户的合同 id 过滤
func (r *GormStore) ListPaymentsByTenant(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	owned := r.db.Model(&domain.Contract{}).Select("id").Where("tenant_id = ?", tenantID)
	return list[domain.Payment](ctx, r.db, "contract_id IN (?)", owned)
}

func (r *GormStore) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return first[domain.Payment](ctx, r.db, "id = ?", id)
}

func (r *GormStore) CreatePayment(ctx context.Context, p *domain.Payment) error {
	c, err := r.GetContract(ctx, p.ContractID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Validation("contract %s does not exist", p.ContractID)
	}
	p.ID = r.newID()
	p.CreatedAt = r.now()
	return r.db.WithContext(ctx).Create(p).Error
}
