package service

import (
	"context"

	"go.uber.org/zap"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
)

// LeasingService 商铺 / 合同 / 缴费 / 咨询的全部操作。
// 每个方法都是先鉴权、再校验、最后才访问存储
type LeasingService struct {
	store domain.Store
	agg   Aggregator
	log   *zap.Logger
}

func NewLeasingService(store domain.Store, log *zap.Logger) *LeasingService {
	return &LeasingService{store: store, agg: NewAggregator(store), log: log}
}

// logged 在传输层把错误收敛成通用 500 之前，先记录完整性错误和意外错误
func (s *LeasingService) logged(op policy.Operation, err error) error {
	if err == nil {
		return nil
	}
	switch k := domain.KindOf(err); k {
	case domain.KindIntegrity:
		s.log.Error("integrity violation", zap.String("op", string(op)), zap.Error(err))
	case domain.KindInternal:
		s.log.Error("store failure", zap.String("op", string(op)), zap.Error(err))
	}
	return err
}

// ---------- 商铺 ----------

func (s *LeasingService) ListLocals(ctx context.Context, id domain.Identity) ([]domain.Local, error) {
	if err := policy.Authorize(id, policy.ListLocals); err != nil {
		return nil, err
	}
	ls, err := s.store.ListLocals(ctx)
	return ls, s.logged(policy.ListLocals, err)
}

func (s *LeasingService) GetLocal(ctx context.Context, id domain.Identity, localID string) (*domain.Local, error) {
	if err := policy.Authorize(id, policy.GetLocal); err != nil {
		return nil, err
	}
	l, err := s.store.GetLocal(ctx, localID)
	if err != nil {
		return nil, s.logged(policy.GetLocal, err)
	}
	if l == nil {
		return nil, domain.NotFound("Local")
	}
	return l, nil
}

func (s *LeasingService) CreateLocal(ctx context.Context, id domain.Identity, in domain.LocalInput) (*domain.Local, error) {
	if err := policy.Authorize(id, policy.CreateLocal); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	if err := positive("size", in.Size); err != nil {
		return nil, err
	}
	if err := positive("monthlyPrice", in.MonthlyPrice); err != nil {
		return nil, err
	}
	l := in.Local()
	if err := s.store.CreateLocal(ctx, &l); err != nil {
		return nil, s.logged(policy.CreateLocal, err)
	}
	return &l, nil
}

func (s *LeasingService) UpdateLocal(ctx context.Context, id domain.Identity, localID string, p domain.LocalPatch) (*domain.Local, error) {
	if err := policy.Authorize(id, policy.UpdateLocal); err != nil {
		return nil, err
	}
	if err := check(p); err != nil {
		return nil, err
	}
	if p.Size != nil {
		if err := positive("size", *p.Size); err != nil {
			return nil, err
		}
	}
	if p.MonthlyPrice != nil {
		if err := positive("monthlyPrice", *p.MonthlyPrice); err != nil {
			return nil, err
		}
	}
	l, err := s.store.UpdateLocal(ctx, localID, p)
	if err != nil {
		return nil, s.logged(policy.UpdateLocal, err)
	}
	if l == nil {
		return nil, domain.NotFound("Local")
	}
	return l, nil
}

func (s *LeasingService) DeleteLocal(ctx context.Context, id domain.Identity, localID string) error {
	if err := policy.Authorize(id, policy.DeleteLocal); err != nil {
		return err
	}
	ok, err := s.store.DeleteLocal(ctx, localID)
	if err != nil {
		return s.logged(policy.DeleteLocal, err)
	}
	if !ok {
		return domain.NotFound("Local")
	}
	s.log.Info("local deleted", zap.String("local_id", localID), zap.String("by", id.UserID))
	return nil
}
