package service

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"leasehub/internal/domain"
	"leasehub/internal/policy"
)

// Stats 开发者面板快照：各集合及各状态的记录数
type Stats struct {
	Users       map[domain.Role]int64         `json:"users"`
	Locals      map[domain.LocalStatus]int    `json:"locals"`
	Contracts   map[domain.ContractStatus]int `json:"contracts"`
	Payments    map[domain.PaymentStatus]int  `json:"payments"`
	Requests    map[domain.RequestStatus]int  `json:"requests"`
	Totals      map[string]int64              `json:"totals"`
	GeneratedAt time.Time                     `json:"generatedAt"`
}

type StatsService struct {
	store domain.Store
	now   func() time.Time
	// 并发调用共享同一次扫描，扫描结束后不保留结果
	sf singleflight.Group
}

const scanTimeout = 30 * time.Second

func NewStatsService(store domain.Store) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

func (s *StatsService) Snapshot(ctx context.Context, id domain.Identity) (*Stats, error) {
	if err := policy.Authorize(id, policy.ViewStats); err != nil {
		return nil, err
	}
	// 共享扫描不能随发起者的 context 一起取消
	ch := s.sf.DoChan("stats", func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), scanTimeout)
		defer cancel()
		return s.collect(sctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Stats), nil
	}
}

func (s *StatsService) collect(ctx context.Context) (*Stats, error) {
	users, err := s.store.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	locals, err := s.store.ListLocals(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := s.store.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.store.ListRequests(ctx)
	if err != nil {
		return nil, err
	}

	var userTotal int64
	for _, n := range users {
		userTotal += n
	}
	return &Stats{
		Users:     users,
		Locals:    countBy(locals, func(l domain.Local) domain.LocalStatus { return l.Status }),
		Contracts: countBy(contracts, func(c domain.Contract) domain.ContractStatus { return c.Status }),
		Payments:  countBy(payments, func(p domain.Payment) domain.PaymentStatus { return p.Status }),
		Requests:  countBy(requests, func(r domain.Request) domain.RequestStatus { return r.Status }),
		Totals: map[string]int64{
			"users":     userTotal,
			"locals":    int64(len(locals)),
			"contracts": int64(len(contracts)),
			"payments":  int64(len(payments)),
			"requests":  int64(len(requests)),
		},
		GeneratedAt: s.now().UTC(),
	}, nil
}

func countBy[T any, K comparable](rows []T, key func(T) K) map[K]int {
	out := make(map[K]int)
	for _, r := range rows {
		out[key(r)]++
	}
	return out
}
