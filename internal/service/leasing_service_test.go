package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leasehub/internal/domain"
	"leasehub/internal/repo/memory"
	"leasehub/internal/service"
)

func TestLocalsWriteRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin", domain.RoleAdmin)
	l := f.local(t, admin, "A-101")

	floor := 2
	in := domain.LocalInput{
		Name: "B-1", Type: domain.LocalTypeOffice, Size: domain.MustDecimal("10"), Floor: &floor,
		MonthlyPrice: domain.MustDecimal("100"), Location: "East",
	}
	st := domain.LocalMaintenance
	callers := map[string]domain.Identity{
		"anonymous": domain.Anonymous(),
		"visitor":   f.user(t, "vera", domain.RoleVisitor),
		"tenant":    f.user(t, "tom", domain.RoleTenant),
		"developer": f.user(t, "deb", domain.RoleDeveloper),
	}
	for name, id := range callers {
		t.Run(name, func(t *testing.T) {
			_, err := f.leasing.CreateLocal(ctx, id, in)
			assert.True(t, domain.IsKind(err, domain.KindForbidden))
			_, err = f.leasing.UpdateLocal(ctx, id, l.ID, domain.LocalPatch{Status: &st})
			assert.True(t, domain.IsKind(err, domain.KindForbidden))
			err = f.leasing.DeleteLocal(ctx, id, l.ID)
			assert.True(t, domain.IsKind(err, domain.KindForbidden))

			all, err := f.leasing.ListLocals(ctx, id)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, domain.LocalAvailable, all[0].Status)
		})
	}
}

func TestLocalValidationAndNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin", domain.RoleAdmin)

	floor := 1
	base := domain.LocalInput{
		Name: "A", Type: domain.LocalTypeRetail, Size: domain.MustDecimal("10"), Floor: &floor,
		MonthlyPrice: domain.MustDecimal("100"), Location: "North",
	}
	bad := map[string]func(*domain.LocalInput){
		"no floor":    func(in *domain.LocalInput) { in.Floor = nil },
		"bad type":    func(in *domain.LocalInput) { in.Type = "Warehouse" },
		"zero price":  func(in *domain.LocalInput) { in.MonthlyPrice = domain.Decimal{} },
		"no location": func(in *domain.LocalInput) { in.Location = "" },
		"bad status":  func(in *domain.LocalInput) { in.Status = "Closed" },
	}
	for name, mutate := range bad {
		in := base
		mutate(&in)
		_, err := f.leasing.CreateLocal(ctx, admin, in)
		assert.True(t, domain.IsKind(err, domain.KindValidation), "%s: %v", name, err)
	}

	st := domain.LocalOccupied
	_, err := f.leasing.UpdateLocal(ctx, admin, "missing", domain.LocalPatch{Status: &st})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	err = f.leasing.DeleteLocal(ctx, admin, "missing")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	_, err = f.leasing.GetLocal(ctx, domain.Anonymous(), "missing")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestTenantScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin", domain.RoleAdmin)
	t1 := f.user(t, "tenant1", domain.RoleTenant)
	t2 := f.user(t, "tenant2", domain.RoleTenant)
	c1 := f.contract(t, admin, f.local(t, admin, "A").ID, t1.UserID)
	c2 := f.contract(t, admin, f.local(t, admin, "B").ID, t2.UserID)

	paid := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	for _, in := range []domain.PaymentInput{
		{ContractID: c1.ID, Amount: domain.MustDecimal("2500"), DueDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), PaidDate: &paid, Status: domain.PaymentPaid},
		{ContractID: c1.ID, Amount: domain.MustDecimal("2500"), DueDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ContractID: c2.ID, Amount: domain.MustDecimal("2500"), DueDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	} {
		_, err := f.leasing.CreatePayment(ctx, admin, in)
		require.NoError(t, err)
	}

	mine, err := f.leasing.MyContracts(ctx, t1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, t1.UserID, mine[0].TenantID)
	assert.Equal(t, "User tenant1", mine[0].Tenant.FullName)
	assert.Equal(t, "A", mine[0].Local.Name)

	pays, err := f.leasing.MyPayments(ctx, t1)
	require.NoError(t, err)
	require.Len(t, pays, 2)
	for _, p := range pays {
		assert.Equal(t, c1.ID, p.ContractID)
	}

	_, err = f.leasing.MyContracts(ctx, admin)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	_, err = f.leasing.ListContracts(ctx, t1)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	_, err = f.leasing.ListPayments(ctx, t1)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	all, err := f.leasing.ListPayments(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.NotEmpty(t, all[0].Contract.Local.ID)

	byContract, err := f.leasing.ContractPayments(ctx, admin, c2.ID)
	require.NoError(t, err)
	assert.Len(t, byContract, 1)
}

func TestContractRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin", domain.RoleAdmin)
	tenant := f.user(t, "tenant1", domain.RoleTenant)
	l := f.local(t, admin, "A")
	c := f.contract(t, admin, l.ID, tenant.UserID)
	assert.Equal(t, domain.ContractActive, c.Status)

	_, err := f.leasing.CreateContract(ctx, admin, domain.ContractInput{
		LocalID: l.ID, TenantID: tenant.UserID,
		StartDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent: domain.MustDecimal("1"), Deposit: domain.MustDecimal("0"),
	})
	assert.True(t, domain.IsKind(err, domain.KindConflict), "got %v", err)

	_, err = f.leasing.CreateContract(ctx, admin, domain.ContractInput{
		LocalID: l.ID, TenantID: tenant.UserID,
		StartDate:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent: domain.MustDecimal("1"), Deposit: domain.MustDecimal("-5"),
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation), "got %v", err)

	err = f.leasing.DeleteLocal(ctx, admin, l.ID)
	assert.True(t, domain.IsKind(err, domain.KindConflict))

	cancelled := domain.ContractCancelled
	upd, err := f.leasing.UpdateContract(ctx, admin, c.ID, domain.ContractPatch{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, domain.ContractCancelled, upd.Status)

	require.NoError(t, f.leasing.DeleteLocal(ctx, admin, l.ID))

	_, err = f.leasing.UpdateContract(ctx, admin, "missing", domain.ContractPatch{Status: &cancelled})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin", domain.RoleAdmin)
	l := f.local(t, admin, "A-101")

	r, err := f.leasing.CreateRequest(ctx, domain.Anonymous(), domain.RequestInput{
		Name: "Carlos", Email: "c@x.com", Phone: "555", LocalID: &l.ID,
		Message: "Interested in visiting, please contact me soon",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, r.Status)
	assert.Nil(t, r.Response)

	_, err = f.leasing.CreateRequest(ctx, domain.Anonymous(), domain.RequestInput{
		Name: "Carlos", Email: "c@x.com", Phone: "555", Message: "too short",
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = f.leasing.ListRequests(ctx, domain.Anonymous())
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	answered := domain.RequestAnswered
	upd, err := f.leasing.UpdateRequest(ctx, admin, r.ID, domain.RequestPatch{Status: &answered, Response: ptr("See you Monday")})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestAnswered, upd.Status)

	bogus := domain.RequestStatus("Done")
	_, err = f.leasing.UpdateRequest(ctx, admin, r.ID, domain.RequestPatch{Status: &bogus})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = f.leasing.GetRequest(ctx, admin, "missing")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

// danglingStore 隐藏所有商铺，聚合时关联必然缺失
type danglingStore struct{ *memory.Store }

func (danglingStore) GetLocal(context.Context, string) (*domain.Local, error) { return nil, nil }

func TestAggregationIntegrity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin", domain.RoleAdmin)
	tenant := f.user(t, "tenant1", domain.RoleTenant)
	f.contract(t, admin, f.local(t, admin, "A").ID, tenant.UserID)

	leasing := service.NewLeasingService(danglingStore{f.store}, zap.NewNop())
	_, err := leasing.ListContracts(ctx, admin)
	assert.True(t, domain.IsKind(err, domain.KindIntegrity), "got %v", err)
	_, err = leasing.MyContracts(ctx, tenant)
	assert.True(t, domain.IsKind(err, domain.KindIntegrity), "got %v", err)
}
