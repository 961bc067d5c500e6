package recommend

// Policy 候选商品的可见性策略
// 设计说明:
// 1. 纯领域逻辑,不触碰数据库:候选携带裁决所需的全部元数据
// 2. 四条规则按代价从低到高依次短路:激活状态 → 可列出性 → 店铺归属 → 客户组授权
// 3. GroupAccessEnabled=false时跳过客户组检查(单组部署的快捷开关)
type Policy struct {
	// GroupAccessEnabled 是否启用客户组授权检查
	GroupAccessEnabled bool
	// GuestGroupID 访客未登录(客户组为空)时兜底使用的游客组ID
	GuestGroupID uint
}

// Eligible 判定候选商品在给定范围内是否可展示
func (p Policy) Eligible(c Candidate, scope Scope) bool {
	if !c.Active {
		return false
	}
	if !c.Visibility.Listable() {
		return false
	}
	if scope.StoreID != 0 && c.StoreID != scope.StoreID {
		return false
	}
	if !p.GroupAccessEnabled {
		return true
	}
	return p.groupAuthorized(c, scope.CustomerGroups)
}

// Filter 过滤出范围内可展示的候选(保持输入顺序)
func (p Policy) Filter(candidates []Candidate, scope Scope) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if p.Eligible(c, scope) {
			out = append(out, c)
		}
	}
	return out
}

func (p Policy) groupAuthorized(c Candidate, groups []uint) bool {
	// 默认分类未授权任何组时商品对所有人不可见
	if len(c.AuthorizedGroupIDs) == 0 {
		return false
	}

	// 游客兜底:未携带任何客户组时按游客组裁决
	if len(groups) == 0 {
		groups = []uint{p.GuestGroupID}
	}

	authorized := make(map[uint]struct{}, len(c.AuthorizedGroupIDs))
	for _, g := range c.AuthorizedGroupIDs {
		authorized[g] = struct{}{}
	}
	for _, g := range groups {
		if _, ok := authorized[g]; ok {
			return true
		}
	}
	return false
}
