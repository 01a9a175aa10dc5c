// Package storetest 所有 domain.Store 实现共用的一致性测试
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasehub/internal/domain"
)

// Factory 每个子测试一个空存储
type Factory func(t *testing.T) domain.Store

func Run(t *testing.T, newStore Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("locals", func(t *testing.T) { testLocals(t, newStore(t)) })
	t.Run("contracts", func(t *testing.T) { testContracts(t, newStore(t)) })
	t.Run("payments", func(t *testing.T) { testPayments(t, newStore(t)) })
	t.Run("requests", func(t *testing.T) { testRequests(t, newStore(t)) })
}

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func mkUser(t *testing.T, s domain.Store, name string, role domain.Role) domain.User {
	t.Helper()
	u := domain.User{
		Username:     name,
		PasswordHash: "x",
		Email:        name + "@example.com",
		FullName:     "User " + name,
		Role:         role,
	}
	require.NoError(t, s.CreateUser(context.Background(), &u))
	return u
}

func mkLocal(t *testing.T, s domain.Store, name string) domain.Local {
	t.Helper()
	l := domain.Local{
		Name:         name,
		Type:         domain.LocalTypeRetail,
		Status:       domain.LocalAvailable,
		Size:         domain.MustDecimal("80"),
		Floor:        1,
		MonthlyPrice: domain.MustDecimal("2500"),
		Images:       []string{"a.jpg"},
		Location:     "Wing A",
	}
	require.NoError(t, s.CreateLocal(context.Background(), &l))
	return l
}

func mkContract(t *testing.T, s domain.Store, localID, tenantID, from, to string, st domain.ContractStatus) (domain.Contract, error) {
	t.Helper()
	c := domain.Contract{
		LocalID:     localID,
		TenantID:    tenantID,
		StartDate:   day(from),
		EndDate:     day(to),
		MonthlyRent: domain.MustDecimal("2500"),
		Deposit:     domain.MustDecimal("5000"),
		Status:      st,
		Terms:       "standard",
	}
	err := s.CreateContract(context.Background(), &c)
	return c, err
}

func testUsers(t *testing.T, s domain.Store) {
	ctx := context.Background()
	u := mkUser(t, s, "alice", domain.RoleTenant)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)

	byName, err := s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := s.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	missing, err := s.FindByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	dupName := domain.User{Username: "alice", PasswordHash: "x", Email: "other@example.com", FullName: "A", Role: domain.RoleVisitor}
	err = s.CreateUser(ctx, &dupName)
	assert.True(t, domain.IsKind(err, domain.KindConflict), "got %v", err)

	dupEmail := domain.User{Username: "alice2", PasswordHash: "x", Email: "alice@example.com", FullName: "A", Role: domain.RoleVisitor}
	err = s.CreateUser(ctx, &dupEmail)
	assert.True(t, domain.IsKind(err, domain.KindConflict), "got %v", err)

	mkUser(t, s, "dev", domain.RoleDeveloper)
	counts, err := s.CountUsersByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Role]int64{domain.RoleTenant: 1, domain.RoleDeveloper: 1}, counts)
}

func testLocals(t *testing.T, s domain.Store) {
	ctx := context.Background()
	l := mkLocal(t, s, "Shop 1")

	got, err := s.GetLocal(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2500.00", got.MonthlyPrice.String())
	assert.Equal(t, "80.00", got.Size.String())
	assert.Equal(t, []string{"a.jpg"}, got.Images)
	assert.NotNil(t, got.Amenities)

	// 只改状态，其它字段不变
	time.Sleep(2 * time.Millisecond)
	st := domain.LocalOccupied
	upd, err := s.UpdateLocal(ctx, l.ID, domain.LocalPatch{Status: &st})
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, domain.LocalOccupied, upd.Status)
	assert.Equal(t, got.Name, upd.Name)
	assert.Equal(t, got.MonthlyPrice.String(), upd.MonthlyPrice.String())
	assert.Equal(t, got.Location, upd.Location)
	assert.True(t, upd.UpdatedAt.After(got.UpdatedAt), "updatedAt must advance")

	none, err := s.UpdateLocal(ctx, "missing", domain.LocalPatch{Status: &st})
	require.NoError(t, err)
	assert.Nil(t, none)

	all, err := s.ListLocals(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	ok, err := s.DeleteLocal(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.DeleteLocal(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	gone, err := s.GetLocal(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func testContracts(t *testing.T, s domain.Store) {
	ctx := context.Background()
	tenant := mkUser(t, s, "tina", domain.RoleTenant)
	other := mkUser(t, s, "otto", domain.RoleTenant)
	visitor := mkUser(t, s, "vic", domain.RoleVisitor)
	l := mkLocal(t, s, "Shop 1")

	c, err := mkContract(t, s, l.ID, tenant.ID, "2024-01-01", "2024-12-31", domain.ContractActive)
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)

	_, err = mkContract(t, s, l.ID, other.ID, "2024-06-01", "2025-05-31", domain.ContractActive)
	assert.True(t, domain.IsKind(err, domain.KindConflict), "overlap: %v", err)

	_, err = mkContract(t, s, l.ID, other.ID, "2025-01-01", "2025-12-31", domain.ContractActive)
	require.NoError(t, err, "adjacent periods do not overlap")

	_, err = mkContract(t, s, l.ID, other.ID, "2024-06-01", "2024-08-01", domain.ContractCancelled)
	require.NoError(t, err, "non-active contracts may overlap")

	_, err = mkContract(t, s, l.ID, tenant.ID, "2026-02-01", "2026-01-01", domain.ContractActive)
	assert.True(t, domain.IsKind(err, domain.KindValidation), "reversed dates: %v", err)

	_, err = mkContract(t, s, "missing", tenant.ID, "2030-01-01", "2030-12-31", domain.ContractActive)
	assert.True(t, domain.IsKind(err, domain.KindValidation), "unknown local: %v", err)

	_, err = mkContract(t, s, l.ID, visitor.ID, "2030-01-01", "2030-12-31", domain.ContractActive)
	assert.True(t, domain.IsKind(err, domain.KindValidation), "non-tenant: %v", err)

	own, err := s.ListContractsByTenant(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, c.ID, own[0].ID)

	all, err := s.ListContracts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ok, err := s.DeleteLocal(ctx, l.ID)
	assert.True(t, domain.IsKind(err, domain.KindConflict), "delete with active contract: %v", err)
	assert.False(t, ok)

	renew := domain.ContractRenewal
	upd, err := s.UpdateContract(ctx, c.ID, domain.ContractPatch{Status: &renew, Terms: ptr("renegotiated")})
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, domain.ContractRenewal, upd.Status)
	assert.Equal(t, "renegotiated", upd.Terms)
	assert.Equal(t, "2500.00", upd.MonthlyRent.String())

	// 重新激活到已被占用的时间段会被拒绝
	active := domain.ContractActive
	end := day("2025-03-01")
	_, err = s.UpdateContract(ctx, c.ID, domain.ContractPatch{Status: &active, EndDate: &end})
	assert.True(t, domain.IsKind(err, domain.KindConflict), "reactivate overlap: %v", err)

	none, err := s.UpdateContract(ctx, "missing", domain.ContractPatch{Status: &renew})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func testPayments(t *testing.T, s domain.Store) {
	ctx := context.Background()
	tina := mkUser(t, s, "tina", domain.RoleTenant)
	otto := mkUser(t, s, "otto", domain.RoleTenant)
	l1 := mkLocal(t, s, "Shop 1")
	l2 := mkLocal(t, s, "Shop 2")
	c1, err := mkContract(t, s, l1.ID, tina.ID, "2024-01-01", "2024-12-31", domain.ContractActive)
	require.NoError(t, err)
	c2, err := mkContract(t, s, l2.ID, otto.ID, "2024-01-01", "2024-12-31", domain.ContractActive)
	require.NoError(t, err)

	pay := func(contractID string) domain.Payment {
		p := domain.Payment{
			ContractID: contractID,
			Amount:     domain.MustDecimal("2500"),
			DueDate:    day("2024-02-01"),
			Status:     domain.PaymentPending,
		}
		require.NoError(t, s.CreatePayment(ctx, &p))
		return p
	}
	p1 := pay(c1.ID)
	pay(c2.ID)
	pay(c2.ID)

	bad := domain.Payment{ContractID: "missing", Amount: domain.MustDecimal("1"), DueDate: day("2024-02-01")}
	err = s.CreatePayment(ctx, &bad)
	assert.True(t, domain.IsKind(err, domain.KindValidation), "unknown contract: %v", err)

	mine, err := s.ListPaymentsByTenant(ctx, tina.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, p1.ID, mine[0].ID)
	assert.Equal(t, "2500.00", mine[0].Amount.String())

	byContract, err := s.ListPaymentsByContract(ctx, c2.ID)
	require.NoError(t, err)
	assert.Len(t, byContract, 2)

	all, err := s.ListPayments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := s.GetPayment(ctx, p1.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.PaidDate)
}

func testRequests(t *testing.T, s domain.Store) {
	ctx := context.Background()
	l := mkLocal(t, s, "Shop 1")

	r := domain.Request{
		Name:     "Rita",
		Email:    "rita@example.com",
		Phone:    "555-0100",
		LocalID:  &l.ID,
		Message:  "Is this unit still available?",
		Status:   domain.RequestAnswered,
		Response: ptr("preset"),
	}
	require.NoError(t, s.CreateRequest(ctx, &r))
	assert.Equal(t, domain.RequestPending, r.Status)
	assert.Nil(t, r.Response)

	bad := domain.Request{Name: "X", Email: "x@example.com", Phone: "1", LocalID: ptr("missing"), Message: "hello there friend"}
	err := s.CreateRequest(ctx, &bad)
	assert.True(t, domain.IsKind(err, domain.KindValidation), "unknown local: %v", err)

	got, err := s.GetRequest(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.RequestPending, got.Status)

	time.Sleep(2 * time.Millisecond)
	answered := domain.RequestAnswered
	upd, err := s.UpdateRequest(ctx, r.ID, domain.RequestPatch{Status: &answered, Response: ptr("Yes, it is.")})
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, domain.RequestAnswered, upd.Status)
	require.NotNil(t, upd.Response)
	assert.Equal(t, "Yes, it is.", *upd.Response)
	assert.Equal(t, got.Message, upd.Message)
	assert.True(t, upd.UpdatedAt.After(got.UpdatedAt))

	none, err := s.UpdateRequest(ctx, "missing", domain.RequestPatch{Status: &answered})
	require.NoError(t, err)
	assert.Nil(t, none)

	all, err := s.ListRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
