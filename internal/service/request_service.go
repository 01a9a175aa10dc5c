package service

import (
	"context"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
)

func (s *LeasingService) ListRequests(ctx context.Context, id domain.Identity) ([]domain.Request, error) {
	if err := policy.Authorize(id, policy.ListRequests); err != nil {
		return nil, err
	}
	rs, err := s.store.ListRequests(ctx)
	return rs, s.logged(policy.ListRequests, err)
}

func (s *LeasingService) GetRequest(ctx context.Context, id domain.Identity, requestID string) (*domain.Request, error) {
	if err := policy.Authorize(id, policy.GetRequest); err != nil {
		return nil, err
	}
	r, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, s.logged(policy.GetRequest, err)
	}
	if r == nil {
		return nil, domain.NotFound("Request")
	}
	return r, nil
}

// CreateRequest 任何人都可以提交，状态固定为 Pending
func (s *LeasingService) CreateRequest(ctx context.Context, id domain.Identity, in domain.RequestInput) (*domain.Request, error) {
	if err := policy.Authorize(id, policy.CreateRequest); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	r := in.Request()
	if err := s.store.CreateRequest(ctx, &r); err != nil {
		return nil, s.logged(policy.CreateRequest, err)
	}
	return &r, nil
}

func (s *LeasingService) UpdateRequest(ctx context.Context, id domain.Identity, requestID string, p domain.RequestPatch) (*domain.Request, error) {
	if err := policy.Authorize(id, policy.UpdateRequest); err != nil {
		return nil, err
	}
	if err := check(p); err != nil {
		return nil, err
	}
	r, err := s.store.UpdateRequest(ctx, requestID, p)
	if err != nil {
		return nil, s.logged(policy.UpdateRequest, err)
	}
	if r == nil {
		return nil, domain.NotFound("Request")
	}
	return r, nil
}
