package product

import (
	"context"
	"errors"
	"testing"
)

// fakeRepo 内存商品仓储
type fakeRepo struct {
	byID   map[uint]*Product
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uint]*Product), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, p *Product) error {
	for _, existing := range f.byID {
		if existing.Reference == p.Reference {
			return ErrReferenceDuplicate
		}
	}
	p.ID = f.nextID
	f.nextID++
	clone := *p
	f.byID[p.ID] = &clone
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uint) (*Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeRepo) FindByIDs(_ context.Context, ids []uint) ([]*Product, error) {
	out := make([]*Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, p *Product) error {
	if _, ok := f.byID[p.ID]; !ok {
		return ErrProductNotFound
	}
	clone := *p
	f.byID[p.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return ErrProductNotFound
	}
	delete(f.byID, id)
	return nil
}

// TestCreateProduct 测试商品创建的业务规则
func TestCreateProduct(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, 1, "运动水壶", "SKU-001", 2900, VisibilityBoth, 10)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if p.ID == 0 {
		t.Error("创建后应回填ID")
	}
	if !p.Active {
		t.Error("新建商品应默认上架")
	}

	t.Log("✓ 商品创建成功")
}

// TestCreateProductValidation 测试创建时的参数校验
func TestCreateProductValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		name       string
		storeID    uint
		price      int64
		visibility Visibility
		wantErr    error
	}{
		{"店铺为0", 0, 2900, VisibilityBoth, ErrInvalidStore},
		{"价格为0", 1, 0, VisibilityBoth, ErrInvalidPrice},
		{"价格为负", 1, -100, VisibilityBoth, ErrInvalidPrice},
		{"非法可见性", 1, 2900, Visibility("everywhere"), ErrInvalidVisibility},
	}

	for _, tc := range cases {
		_, err := svc.CreateProduct(ctx, tc.storeID, "商品", "SKU-X", tc.price, tc.visibility, 10)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: 期望%v, 实际%v", tc.name, tc.wantErr, err)
		}
	}

	t.Log("✓ 参数校验正确")
}

// TestCreateProductDuplicateReference 测试编码唯一性
func TestCreateProductDuplicateReference(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, 1, "商品A", "SKU-DUP", 1000, VisibilityBoth, 10); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}

	_, err := svc.CreateProduct(ctx, 1, "商品B", "SKU-DUP", 2000, VisibilityBoth, 10)
	if !errors.Is(err, ErrReferenceDuplicate) {
		t.Errorf("期望编码重复错误, 实际%v", err)
	}

	t.Log("✓ 编码唯一性校验正确")
}

// TestUpdateProductPartial 测试部分更新语义
func TestUpdateProductPartial(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, 1, "运动水壶", "SKU-001", 2900, VisibilityBoth, 10)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 只改价格,其他字段不变
	updated, err := svc.UpdateProduct(ctx, created.ID, "", "", 3200, "", nil)
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Price != 3200 {
		t.Errorf("期望价格3200, 实际%d", updated.Price)
	}
	if updated.Name != "运动水壶" || updated.Reference != "SKU-001" {
		t.Error("未提交的字段不应变化")
	}
	if updated.Visibility != VisibilityBoth {
		t.Error("可见性不应变化")
	}

	// 下架
	inactive := false
	updated, err = svc.UpdateProduct(ctx, created.ID, "", "", 0, "", &inactive)
	if err != nil {
		t.Fatalf("下架失败: %v", err)
	}
	if updated.Active {
		t.Error("商品应已下架")
	}
	if updated.Price != 3200 {
		t.Error("价格为0表示不修改")
	}

	t.Log("✓ 部分更新语义正确")
}

// TestUpdateProductInvalidVisibility 测试更新时的可见性校验
func TestUpdateProductInvalidVisibility(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, 1, "商品", "SKU-001", 1000, VisibilityBoth, 10)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	_, err = svc.UpdateProduct(ctx, created.ID, "", "", 0, Visibility("nowhere"), nil)
	if !errors.Is(err, ErrInvalidVisibility) {
		t.Errorf("期望可见性错误, 实际%v", err)
	}

	t.Log("✓ 更新可见性校验正确")
}

// TestDeleteProduct 测试商品删除
func TestDeleteProduct(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, 1, "商品", "SKU-001", 1000, VisibilityBoth, 10)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("重复删除期望NotFound, 实际%v", err)
	}

	t.Log("✓ 删除语义正确")
}

// TestVisibilityListable 测试可见性的可列出性
func TestVisibilityListable(t *testing.T) {
	cases := map[Visibility]bool{
		VisibilityBoth:    true,
		VisibilityCatalog: true,
		VisibilitySearch:  false,
		VisibilityNone:    false,
	}
	for v, want := range cases {
		if v.Listable() != want {
			t.Errorf("%s.Listable()期望%v", v, want)
		}
	}

	t.Log("✓ 可列出性判定正确")
}
