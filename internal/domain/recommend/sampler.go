package recommend

import (
	"math/rand"
	"sync"
)

// Sampler 从合格候选中均匀抽样
// 设计说明:
// 1. 可注入随机种子:生产环境用时间种子,测试注入固定种子得到确定性结果
// 2. rand.Rand本身不是并发安全的,解析器会被多个请求并发调用,用互斥锁保护
// 3. 部分Fisher-Yates洗牌:只洗前n个位置,O(n)而不是O(len(ids))
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler 构造抽样器
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Sample 从ids中无放回均匀抽取至多n个
// 输入切片不会被修改;n>=len(ids)时返回全部(顺序随机)
func (s *Sampler) Sample(ids []uint, n int) []uint {
	if n <= 0 || len(ids) == 0 {
		return []uint{}
	}

	pool := make([]uint, len(ids))
	copy(pool, ids)
	if n > len(pool) {
		n = len(pool)
	}

	s.mu.Lock()
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	s.mu.Unlock()

	return pool[:n]
}
