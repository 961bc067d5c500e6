package recommend

import "testing"

// TestSamplerBounds 测试抽样数量边界
func TestSamplerBounds(t *testing.T) {
	s := NewSampler(1)
	ids := []uint{1, 2, 3, 4, 5}

	if got := s.Sample(ids, 3); len(got) != 3 {
		t.Errorf("期望抽取3个, 实际%d个", len(got))
	}
	if got := s.Sample(ids, 10); len(got) != 5 {
		t.Errorf("n超过候选数时应返回全部5个, 实际%d个", len(got))
	}
	if got := s.Sample(ids, 0); len(got) != 0 {
		t.Errorf("n=0应返回空, 实际%d个", len(got))
	}
	if got := s.Sample(nil, 3); len(got) != 0 {
		t.Errorf("空候选应返回空, 实际%d个", len(got))
	}

	t.Log("✓ 抽样数量边界正确")
}

// TestSamplerNoReplacement 测试无放回抽样(结果不重复且都来自候选)
func TestSamplerNoReplacement(t *testing.T) {
	s := NewSampler(42)
	ids := []uint{10, 20, 30, 40, 50, 60}

	got := s.Sample(ids, 4)
	seen := make(map[uint]bool)
	pool := map[uint]bool{10: true, 20: true, 30: true, 40: true, 50: true, 60: true}
	for _, id := range got {
		if seen[id] {
			t.Errorf("商品%d被重复抽取", id)
		}
		seen[id] = true
		if !pool[id] {
			t.Errorf("商品%d不在候选中", id)
		}
	}

	t.Log("✓ 无放回抽样正确")
}

// TestSamplerDeterministic 测试固定种子的确定性
func TestSamplerDeterministic(t *testing.T) {
	ids := []uint{1, 2, 3, 4, 5, 6, 7, 8}

	a := NewSampler(7).Sample(ids, 3)
	b := NewSampler(7).Sample(ids, 3)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("相同种子应产生相同抽样: %v != %v", a, b)
		}
	}

	t.Log("✓ 固定种子抽样可复现")
}

// TestSamplerDoesNotMutateInput 测试输入切片不被修改
func TestSamplerDoesNotMutateInput(t *testing.T) {
	s := NewSampler(1)
	ids := []uint{1, 2, 3, 4, 5}

	s.Sample(ids, 5)
	for i, want := range []uint{1, 2, 3, 4, 5} {
		if ids[i] != want {
			t.Fatalf("输入切片被修改: %v", ids)
		}
	}

	t.Log("✓ 输入切片保持不变")
}
