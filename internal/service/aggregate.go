package service

import (
	"context"

	"leasehub/internal/domain"
)

// readers 聚合只需要的存储读接口
type readers interface {
	GetLocal(ctx context.Context, id string) (*domain.Local, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetContract(ctx context.Context, id string) (*domain.Contract, error)
}

// Aggregator 组装只读视图，不写也不缓存
type Aggregator struct{ store readers }

func NewAggregator(store readers) Aggregator { return Aggregator{store: store} }

// ContractWithDetails 拼上商铺和租户摘要；关联缺失返回 Integrity 错误
func (a Aggregator) ContractWithDetails(ctx context.Context, c domain.Contract) (domain.ContractWithDetails, error) {
	l, err := a.store.GetLocal(ctx, c.LocalID)
	if err != nil {
		return domain.ContractWithDetails{}, err
	}
	if l == nil {
		return domain.ContractWithDetails{}, domain.Integrity("contract %s references missing local %s", c.ID, c.LocalID)
	}
	u, err := a.store.GetUser(ctx, c.TenantID)
	if err != nil {
		return domain.ContractWithDetails{}, err
	}
	if u == nil {
		return domain.ContractWithDetails{}, domain.Integrity("contract %s references missing tenant %s", c.ID, c.TenantID)
	}
	return domain.ContractWithDetails{Contract: c, Local: *l, Tenant: u.Summary()}, nil
}

func (a Aggregator) PaymentWithContract(ctx context.Context, p domain.Payment) (domain.PaymentWithContract, error) {
	c, err := a.store.GetContract(ctx, p.ContractID)
	if err != nil {
		return domain.PaymentWithContract{}, err
	}
	if c == nil {
		return domain.PaymentWithContract{}, domain.Integrity("payment %s references missing contract %s", p.ID, p.ContractID)
	}
	details, err := a.ContractWithDetails(ctx, *c)
	if err != nil {
		return domain.PaymentWithContract{}, err
	}
	return domain.PaymentWithContract{Payment: p, Contract: details}, nil
}

func (a Aggregator) Contracts(ctx context.Context, cs []domain.Contract) ([]domain.ContractWithDetails, error) {
	out := make([]domain.ContractWithDetails, 0, len(cs))
	for _, c := range cs {
		d, err := a.ContractWithDetails(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (a Aggregator) Payments(ctx context.Context, ps []domain.Payment) ([]domain.PaymentWithContract, error) {
	out := make([]domain.PaymentWithContract, 0, len(ps))
	for _, p := range ps {
		d, err := a.PaymentWithContract(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
