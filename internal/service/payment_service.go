package service

import (
	"context"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
)

func (s *LeasingService) ListPayments(ctx context.Context, id domain.Identity) ([]domain.PaymentWithContract, error) {
	if err := policy.Authorize(id, policy.ListAllPayments); err != nil {
		return nil, err
	}
	ps, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, s.logged(policy.ListAllPayments, err)
	}
	out, err := s.agg.Payments(ctx, ps)
	return out, s.logged(policy.ListAllPayments, err)
}

func (s *LeasingService) MyPayments(ctx context.Context, id domain.Identity) ([]domain.Payment, error) {
	if err := policy.Authorize(id, policy.ListOwnPayments); err != nil {
		return nil, err
	}
	ps, err := s.store.ListPaymentsByTenant(ctx, id.UserID)
	return ps, s.logged(policy.ListOwnPayments, err)
}

// ContractPayments 某份合同的全部缴费；合同不存在返回 404
func (s *LeasingService) ContractPayments(ctx context.Context, id domain.Identity, contractID string) ([]domain.Payment, error) {
	if err := policy.Authorize(id, policy.GetContract); err != nil {
		return nil, err
	}
	c, err := s.store.GetContract(ctx, contractID)
	if err != nil {
		return nil, s.logged(policy.GetContract, err)
	}
	if c == nil {
		return nil, domain.NotFound("Contract")
	}
	ps, err := s.store.ListPaymentsByContract(ctx, contractID)
	return ps, s.logged(policy.GetContract, err)
}

func (s *LeasingService) CreatePayment(ctx context.Context, id domain.Identity, in domain.PaymentInput) (*domain.Payment, error) {
	if err := policy.Authorize(id, policy.CreatePayment); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	if err := positive("amount", in.Amount); err != nil {
		return nil, err
	}
	if in.DueDate.IsZero() {
		return nil, domain.Validation("dueDate is required")
	}
	p := in.Payment()
	if err := s.store.CreatePayment(ctx, &p); err != nil {
		return nil, s.logged(policy.CreatePayment, err)
	}
	return &p, nil
}
