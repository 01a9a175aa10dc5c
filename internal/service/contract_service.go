package service

import (
	"context"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
)

func (s *LeasingService) ListContracts(ctx context.Context, id domain.Identity) ([]domain.ContractWithDetails, error) {
	if err := policy.Authorize(id, policy.ListAllContracts); err != nil {
		return nil, err
	}
	cs, err := s.store.ListContracts(ctx)
	if err != nil {
		return nil, s.logged(policy.ListAllContracts, err)
	}
	out, err := s.agg.Contracts(ctx, cs)
	return out, s.logged(policy.ListAllContracts, err)
}

// MyContracts 只按已校验的调用方 id 过滤，不接受客户端传入的租户 id
func (s *LeasingService) MyContracts(ctx context.Context, id domain.Identity) ([]domain.ContractWithDetails, error) {
	if err := policy.Authorize(id, policy.ListOwnContracts); err != nil {
		return nil, err
	}
	cs, err := s.store.ListContractsByTenant(ctx, id.UserID)
	if err != nil {
		return nil, s.logged(policy.ListOwnContracts, err)
	}
	out, err := s.agg.Contracts(ctx, cs)
	return out, s.logged(policy.ListOwnContracts, err)
}

func (s *LeasingService) GetContract(ctx context.Context, id domain.Identity, contractID string) (*domain.ContractWithDetails, error) {
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
	d, err := s.agg.ContractWithDetails(ctx, *c)
	if err != nil {
		return nil, s.logged(policy.GetContract, err)
	}
	return &d, nil
}

func (s *LeasingService) CreateContract(ctx context.Context, id domain.Identity, in domain.ContractInput) (*domain.ContractWithDetails, error) {
	if err := policy.Authorize(id, policy.CreateContract); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	if err := positive("monthlyRent", in.MonthlyRent); err != nil {
		return nil, err
	}
	if err := nonNegative("deposit", in.Deposit); err != nil {
		return nil, err
	}
	c := in.Contract()
	if err := s.store.CreateContract(ctx, &c); err != nil {
		return nil, s.logged(policy.CreateContract, err)
	}
	d, err := s.agg.ContractWithDetails(ctx, c)
	if err != nil {
		return nil, s.logged(policy.CreateContract, err)
	}
	return &d, nil
}

func (s *LeasingService) UpdateContract(ctx context.Context, id domain.Identity, contractID string, p domain.ContractPatch) (*domain.ContractWithDetails, error) {
	if err := policy.Authorize(id, policy.UpdateContract); err != nil {
		return nil, err
	}
	if err := check(p); err != nil {
		return nil, err
	}
	if p.MonthlyRent != nil {
		if err := positive("monthlyRent", *p.MonthlyRent); err != nil {
			return nil, err
		}
	}
	if p.Deposit != nil {
		if err := nonNegative("deposit", *p.Deposit); err != nil {
			return nil, err
		}
	}
	c, err := s.store.UpdateContract(ctx, contractID, p)
	if err != nil {
		return nil, s.logged(policy.UpdateContract, err)
	}
	if c == nil {
		return nil, domain.NotFound("Contract")
	}
	d, err := s.agg.ContractWithDetails(ctx, *c)
	if err != nil {
		return nil, s.logged(policy.UpdateContract, err)
	}
	return &d, nil
}
