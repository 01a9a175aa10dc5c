// Package memory 进程内存储：所有操作在同一把锁下执行，互相原子；重启后数据丢失
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"leasehub/internal/domain"
	"leasehub/pkg/utils"
)

type Store struct {
	mu    sync.RWMutex
	now   func() time.Time
	newID func() string

	users     *table[domain.User]
	locals    *table[domain.Local]
	contracts *table[domain.Contract]
	payments  *table[domain.Payment]
	requests  *table[domain.Request]
}

var _ domain.Store = (*Store)(nil)

type Option func(*Store)

// WithClock 替换时间源
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithIDs 替换主键生成
func WithIDs(gen func() string) Option { return func(s *Store) { s.newID = gen } }

func New(opts ...Option) *Store {
	s := &Store{
		now:       time.Now,
		newID:     utils.NewID,
		users:     newTable[domain.User](),
		locals:    newTable[domain.Local](),
		contracts: newTable[domain.Contract](),
		payments:  newTable[domain.Payment](),
		requests:  newTable[domain.Request](),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) stamp() time.Time { return s.now().UTC() }

// ---------- 用户 ----------

func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.users.rows {
		if ex.Username == u.Username {
			return domain.Conflict("Username already exists")
		}
		if ex.Email == u.Email {
			return domain.Conflict("Email already exists")
		}
	}
	u.ID = s.newID()
	u.CreatedAt = s.stamp()
	s.users.put(u.ID, *u)
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users.get(id); ok {
		return &u, nil
	}
	return nil, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.Username == username }), nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.Email == email }), nil
}

func (s *Store) findUser(match func(domain.User) bool) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if found := s.users.filter(match); len(found) > 0 {
		return &found[0]
	}
	return nil
}

func (s *Store) CountUsersByRole(_ context.Context) (map[domain.Role]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[domain.Role]int64{}
	for _, u := range s.users.rows {
		out[u.Role]++
	}
	return out, nil
}

// ---------- 商铺 ----------

func (s *Store) ListLocals(_ context.Context) ([]domain.Local, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.locals.filter(nil)
	for i := range out {
		out[i] = cloneLocal(out[i])
	}
	return out, nil
}

func (s *Store) GetLocal(_ context.Context, id string) (*domain.Local, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.locals.get(id); ok {
		l = cloneLocal(l)
		return &l, nil
	}
	return nil, nil
}

func (s *Store) CreateLocal(_ context.Context, l *domain.Local) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.stamp()
	l.ID = s.newID()
	l.CreatedAt, l.UpdatedAt = now, now
	*l = cloneLocal(*l)
	s.locals.put(l.ID, cloneLocal(*l))
	return nil
}

func (s *Store) UpdateLocal(_ context.Context, id string, p domain.LocalPatch) (*domain.Local, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locals.get(id)
	if !ok {
		return nil, nil
	}
	p.Apply(&l)
	l.UpdatedAt = s.stamp()
	l = cloneLocal(l)
	s.locals.put(id, l)
	out := cloneLocal(l)
	return &out, nil
}

func (s *Store) DeleteLocal(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locals.get(id); !ok {
		return false, nil
	}
	if err := domain.CheckLocalRemovable(id, s.contracts.filter(nil)); err != nil {
		return false, err
	}
	return s.locals.del(id), nil
}

// ---------- 合同 ----------

func (s *Store) ListContracts(_ context.Context) ([]domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contracts.filter(nil), nil
}

func (s *Store) ListContractsByTenant(_ context.Context, tenantID string) ([]domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contracts.filter(func(c domain.Contract) bool { return c.TenantID == tenantID }), nil
}

func (s *Store) GetContract(_ context.Context, id string) (*domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.contracts.get(id); ok {
		return &c, nil
	}
	return nil, nil
}

func (s *Store) CreateContract(_ context.Context, c *domain.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locals.get(c.LocalID); !ok {
		return domain.Validation("local %s does not exist", c.LocalID)
	}
	tenant, ok := s.users.get(c.TenantID)
	if !ok {
		return domain.Validation("tenant %s does not exist", c.TenantID)
	}
	if tenant.Role != domain.RoleTenant {
		return domain.Validation("user %s is not a tenant", c.TenantID)
	}
	if err := domain.CheckContract(*c, s.contracts.filter(nil)); err != nil {
		return err
	}
	now := s.stamp()
	c.ID = s.newID()
	c.CreatedAt, c.UpdatedAt = now, now
	s.contracts.put(c.ID, *c)
	return nil
}

func (s *Store) UpdateContract(_ context.Context, id string, p domain.ContractPatch) (*domain.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contracts.get(id)
	if !ok {
		return nil, nil
	}
	p.Apply(&c)
	if err := domain.CheckContract(c, s.contracts.filter(nil)); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.stamp()
	s.contracts.put(id, c)
	return &c, nil
}

// ---------- 缴费 ----------

func (s *Store) ListPayments(_ context.Context) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payments.filter(nil), nil
}

func (s *Store) ListPaymentsByContract(_ context.Context, contractID string) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payments.filter(func(p domain.Payment) bool { return p.ContractID == contractID }), nil
}

func (s *Store) ListPaymentsByTenant(_ context.Context, tenantID string) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned := map[string]struct{}{}
	for _, c := range s.contracts.filter(func(c domain.Contract) bool { return c.TenantID == tenantID }) {
		owned[c.ID] = struct{}{}
	}
	return s.payments.filter(func(p domain.Payment) bool {
		_, ok := owned[p.ContractID]
		return ok
	}), nil
}

func (s *Store) GetPayment(_ context.Context, id string) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.payments.get(id); ok {
		return &p, nil
	}
	return nil, nil
}

func (s *Store) CreatePayment(_ context.Context, p *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contracts.get(p.ContractID); !ok {
		return domain.Validation("contract %s does not exist", p.ContractID)
	}
	p.ID = s.newID()
	p.CreatedAt = s.stamp()
	s.payments.put(p.ID, *p)
	return nil
}

// ---------- 咨询 ----------

func (s *Store) ListRequests(_ context.Context) ([]domain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests.filter(nil), nil
}

func (s *Store) GetRequest(_ context.Context, id string) (*domain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.requests.get(id); ok {
		return &r, nil
	}
	return nil, nil
}

func (s *Store) CreateRequest(_ context.Context, r *domain.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.LocalID != nil {
		if _, ok := s.locals.get(*r.LocalID); !ok {
			return domain.Validation("local %s does not exist", *r.LocalID)
		}
	}
	now := s.stamp()
	r.ID = s.newID()
	r.Status = domain.RequestPending
	r.Response = nil
	r.CreatedAt, r.UpdatedAt = now, now
	s.requests.put(r.ID, *r)
	return nil
}

func (s *Store) UpdateRequest(_ context.Context, id string, p domain.RequestPatch) (*domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests.get(id)
	if !ok {
		return nil, nil
	}
	p.Apply(&r)
	r.UpdatedAt = s.stamp()
	s.requests.put(id, r)
	return &r, nil
}

func cloneLocal(l domain.Local) domain.Local {
	l.Images = slices.Clone(l.Images)
	l.Amenities = slices.Clone(l.Amenities)
	if l.Images == nil {
		l.Images = []string{}
	}
	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	return l
}
