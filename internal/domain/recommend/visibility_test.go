package recommend

import (
	"testing"

	"github.com/xiebiao/crosssell/internal/domain/product"
)

func visibleCandidate(id uint) Candidate {
	return Candidate{
		ProductID:          id,
		StoreID:            1,
		Active:             true,
		Visibility:         product.VisibilityBoth,
		DefaultCategoryID:  10,
		AuthorizedGroupIDs: []uint{1, 2},
	}
}

// TestPolicyEligible 测试四条可见性规则
func TestPolicyEligible(t *testing.T) {
	p := Policy{GroupAccessEnabled: true, GuestGroupID: 1}
	scope := Scope{StoreID: 1, CustomerGroups: []uint{2}}

	if !p.Eligible(visibleCandidate(100), scope) {
		t.Error("满足全部规则的候选应可见")
	}

	inactive := visibleCandidate(100)
	inactive.Active = false
	if p.Eligible(inactive, scope) {
		t.Error("未激活商品不应可见")
	}

	hidden := visibleCandidate(100)
	hidden.Visibility = product.VisibilityNone
	if p.Eligible(hidden, scope) {
		t.Error("visibility=none的商品不应可见")
	}

	searchOnly := visibleCandidate(100)
	searchOnly.Visibility = product.VisibilitySearch
	if p.Eligible(searchOnly, scope) {
		t.Error("仅搜索可见的商品不应出现在推荐列表")
	}

	catalogOnly := visibleCandidate(100)
	catalogOnly.Visibility = product.VisibilityCatalog
	if !p.Eligible(catalogOnly, scope) {
		t.Error("仅目录可见的商品应可列出")
	}

	otherStore := visibleCandidate(100)
	otherStore.StoreID = 2
	if p.Eligible(otherStore, scope) {
		t.Error("其他店铺的商品不应可见")
	}

	wrongGroup := visibleCandidate(100)
	wrongGroup.AuthorizedGroupIDs = []uint{9}
	if p.Eligible(wrongGroup, scope) {
		t.Error("客户组未授权的商品不应可见")
	}

	t.Log("✓ 可见性规则判定正确")
}

// TestPolicyGuestFallback 测试访客客户组兜底
func TestPolicyGuestFallback(t *testing.T) {
	p := Policy{GroupAccessEnabled: true, GuestGroupID: 1}
	guest := Scope{StoreID: 1} // 未携带客户组

	if !p.Eligible(visibleCandidate(100), guest) {
		t.Error("游客组授权的商品对访客应可见")
	}

	noGuest := visibleCandidate(100)
	noGuest.AuthorizedGroupIDs = []uint{2}
	if p.Eligible(noGuest, guest) {
		t.Error("游客组未授权的商品对访客不应可见")
	}

	t.Log("✓ 访客兜底到游客组")
}

// TestPolicyGroupAccessDisabled 测试关闭客户组检查
func TestPolicyGroupAccessDisabled(t *testing.T) {
	p := Policy{GroupAccessEnabled: false}

	c := visibleCandidate(100)
	c.AuthorizedGroupIDs = nil
	if !p.Eligible(c, Scope{StoreID: 1}) {
		t.Error("关闭客户组检查后不应再看授权列表")
	}

	t.Log("✓ 客户组检查可关闭")
}

// TestPolicyUnassignedCategory 测试未授权任何组的分类
func TestPolicyUnassignedCategory(t *testing.T) {
	p := Policy{GroupAccessEnabled: true, GuestGroupID: 1}

	c := visibleCandidate(100)
	c.AuthorizedGroupIDs = []uint{}
	if p.Eligible(c, Scope{StoreID: 1, CustomerGroups: []uint{1, 2, 3}}) {
		t.Error("分类未授权任何组时商品对所有人不可见")
	}

	t.Log("✓ 无授权组的分类被拦截")
}

// TestPolicyZeroStoreScope 测试店铺范围为0时不做店铺过滤
func TestPolicyZeroStoreScope(t *testing.T) {
	p := Policy{GroupAccessEnabled: false}

	c := visibleCandidate(100)
	c.StoreID = 7
	if !p.Eligible(c, Scope{StoreID: 0}) {
		t.Error("范围店铺为0时应跳过店铺检查")
	}

	t.Log("✓ 店铺范围0跳过过滤")
}

// TestPolicyFilter 测试批量过滤保持顺序
func TestPolicyFilter(t *testing.T) {
	p := Policy{GroupAccessEnabled: false}
	scope := Scope{StoreID: 1}

	inactive := visibleCandidate(2)
	inactive.Active = false
	got := p.Filter([]Candidate{visibleCandidate(1), inactive, visibleCandidate(3)}, scope)

	if len(got) != 2 || got[0].ProductID != 1 || got[1].ProductID != 3 {
		t.Errorf("期望过滤后保留[1 3], 实际%v", got)
	}

	t.Log("✓ 批量过滤正确")
}
