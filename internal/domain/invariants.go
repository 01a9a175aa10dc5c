package domain

// CheckContract 所有存储在创建/更新合同时都要执行的约束：日期区间合法，
// 同一商铺上不能有两份时间重叠的 Active 合同。others 可以包含 c 本身
func CheckContract(c Contract, others []Contract) error {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return Validation("startDate and endDate are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return Validation("endDate must not be before startDate")
	}
	if c.Status != ContractActive {
		return nil
	}
	for _, o := range others {
		if o.ID == c.ID || o.LocalID != c.LocalID || o.Status != ContractActive {
			continue
		}
		if c.Overlaps(o) {
			return Conflict("local already has an active contract %s in that period", o.ID)
		}
	}
	return nil
}

// CheckLocalRemovable 商铺上还有生效中的合同（Active / Renewal）时禁止删除
func CheckLocalRemovable(localID string, contracts []Contract) error {
	for _, c := range contracts {
		if c.LocalID == localID && !c.Status.Terminal() {
			return Conflict("local has a %s contract %s", c.Status, c.ID)
		}
	}
	return nil
}
