package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// InputSet 当前"在看"的商品ID集合(购物车内容+正在浏览的商品)
// 设计说明:
// 1. 集合语义:无序、去重。{3,1,2}和{1,2,3}必须产生相同的缓存键,
//    所以构造时就排序,后续所有派生(查询、签名)都基于排序后的副本
// 2. 每个请求由调用方新建,解析器不持有引用
type InputSet struct {
	ids []uint
}

// NewInputSet 构造输入集合(去重+排序)
func NewInputSet(ids []uint) InputSet {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			// 商品ID是正整数,0视为非法输入直接丢弃
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })
	return InputSet{ids: unique}
}

// Empty 集合是否为空
func (s InputSet) Empty() bool {
	return len(s.ids) == 0
}

// Size 集合大小
func (s InputSet) Size() int {
	return len(s.ids)
}

// IDs 返回排序后的ID副本(防止调用方修改内部切片)
func (s InputSet) IDs() []uint {
	out := make([]uint, len(s.ids))
	copy(out, s.ids)
	return out
}

// Contains 是否包含指定商品
func (s InputSet) Contains(id uint) bool {
	// ids有序,二分即可,但集合通常只有个位数元素,线性扫描足够
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Scope 一次解析的上下文范围
// 设计说明:
// 1. StoreID限定店铺(多店铺隔离)
// 2. CustomerGroups是当前访客所属的客户组,为空时由可见性策略兜底到游客组
// 3. MaxRecommendations为0时使用配置默认值
type Scope struct {
	StoreID            uint
	CustomerGroups     []uint
	MaxRecommendations int
}

// Signature 计算(输入集合+范围)的缓存签名
// 设计说明:
// 1. 纯函数:相同的集合+范围永远产生相同的签名(集合与客户组都先排序)
// 2. SHA-256截断前16字节,避免商品很多时key过长,碰撞概率可以忽略
// 3. 签名包含推荐数量上限:上限变化时旧缓存自然失效,不会返回长度错误的列表
func (s InputSet) Signature(scope Scope, maxRecommendations int) string {
	groups := make([]uint, len(scope.CustomerGroups))
	copy(groups, scope.CustomerGroups)
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })

	var b strings.Builder
	for i, id := range s.ids {
		if i > 0 {
			b.WriteByte('-')
		}
		fmt.Fprintf(&b, "%d", id)
	}
	fmt.Fprintf(&b, "|s:%d|g:", scope.StoreID)
	for i, g := range groups {
		if i > 0 {
			b.WriteByte('-')
		}
		fmt.Fprintf(&b, "%d", g)
	}
	fmt.Fprintf(&b, "|n:%d", maxRecommendations)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:16])
}
