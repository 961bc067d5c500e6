package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：推荐模块集成测试
//
// 测试场景覆盖：
// 1. 推荐查询（公开接口）：正常查询、参数验证
// 2. 同一输入的结果稳定性（缓存命中）
// 3. 推荐设置的读写（管理接口）
// 4. 缓存清理与批量导入开关（管理接口）

// TestGetRecommendations 测试推荐查询接口
func TestGetRecommendations(t *testing.T) {
	RequireServer(t)

	t.Run("正常查询", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/recommendations?product_ids=1,2,3&store_id=1", "")

		assert.Equal(t, 0, resp.Code, "查询应该成功: %s", resp.Message)

		var data RecommendationsData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		// 推荐结果取决于订单数据，可能为空，但products字段必须存在
		assert.NotNil(t, data.Products, "products字段不应为null")
		for _, p := range data.Products {
			assert.NotContains(t, []uint{1, 2, 3}, p.ID, "输入商品不应出现在推荐结果中")
		}

		t.Logf("✓ 查询成功, 推荐%d个商品, show_price=%v", len(data.Products), data.ShowPrice)
	})

	t.Run("结果稳定性", func(t *testing.T) {
		// 同一输入连续查询两次，第二次走缓存，结果应一致
		url := BaseURL + "/recommendations?product_ids=1,2&store_id=1"

		first := GetJSON(t, url, "")
		require.Equal(t, 0, first.Code, "首次查询失败: %s", first.Message)

		second := GetJSON(t, url, "")
		require.Equal(t, 0, second.Code, "二次查询失败: %s", second.Message)

		assert.JSONEq(t, string(first.Data), string(second.Data), "缓存命中的结果应与首次一致")

		t.Log("✓ 连续查询结果稳定")
	})

	t.Run("输入顺序无关", func(t *testing.T) {
		a := GetJSON(t, BaseURL+"/recommendations?product_ids=1,2,3&store_id=1", "")
		b := GetJSON(t, BaseURL+"/recommendations?product_ids=3,1,2&store_id=1", "")

		require.Equal(t, 0, a.Code)
		require.Equal(t, 0, b.Code)
		assert.JSONEq(t, string(a.Data), string(b.Data), "输入顺序不应影响结果")

		t.Log("✓ 输入顺序无关")
	})

	t.Run("缺少product_ids应失败", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/recommendations", "")

		assert.NotEqual(t, 0, resp.Code, "缺少必填参数应该失败")

		t.Logf("✓ 参数校验正确: %s", resp.Message)
	})

	t.Run("非法product_ids应失败", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/recommendations?product_ids=1,abc,3", "")

		assert.NotEqual(t, 0, resp.Code, "非法ID应该失败")

		t.Logf("✓ 参数校验正确: %s", resp.Message)
	})

	t.Run("limit限制结果数量", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/recommendations?product_ids=1,2,3&store_id=1&limit=2", "")
		require.Equal(t, 0, resp.Code, "查询失败: %s", resp.Message)

		var data RecommendationsData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.LessOrEqual(t, len(data.Products), 2, "结果不应超过limit")

		t.Logf("✓ limit生效, 返回%d个", len(data.Products))
	})
}

// TestSettings 测试推荐设置的读写
func TestSettings(t *testing.T) {
	RequireServer(t)
	token := AdminToken(t)

	t.Run("未认证不能访问", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/settings", "")

		assert.NotEqual(t, 0, resp.Code, "未认证应该被拒绝")

		t.Logf("✓ 未认证正确被拒绝: %s", resp.Message)
	})

	t.Run("读取设置", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/settings", token)
		require.Equal(t, 0, resp.Code, "读取设置失败: %s", resp.Message)

		var data SettingsData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.GreaterOrEqual(t, data.MaxRecommendations, 1, "数量上限应>=1")

		t.Logf("✓ 当前设置: max=%d, show_price=%v", data.MaxRecommendations, data.ShowPrice)
	})

	t.Run("更新设置并生效", func(t *testing.T) {
		// 先读出当前值，测试结束恢复
		current := GetJSON(t, BaseURL+"/settings", token)
		require.Equal(t, 0, current.Code)
		var before SettingsData
		require.NoError(t, json.Unmarshal(current.Data, &before))
		defer func() {
			PutJSON(t, BaseURL+"/settings", map[string]interface{}{
				"max_recommendations": before.MaxRecommendations,
				"show_price":          before.ShowPrice,
			}, token)
		}()

		resp := PutJSON(t, BaseURL+"/settings", map[string]interface{}{
			"max_recommendations": 3,
			"show_price":          true,
		}, token)
		require.Equal(t, 0, resp.Code, "更新设置失败: %s", resp.Message)

		// 新设置生效:推荐结果不超过3个,show_price为true
		recResp := GetJSON(t, BaseURL+"/recommendations?product_ids=1,2&store_id=1", "")
		require.Equal(t, 0, recResp.Code)
		var rec RecommendationsData
		require.NoError(t, json.Unmarshal(recResp.Data, &rec))
		assert.LessOrEqual(t, len(rec.Products), 3, "结果不应超过新上限")
		assert.True(t, rec.ShowPrice, "show_price应为true")

		t.Log("✓ 设置更新并即时生效")
	})

	t.Run("非法上限应失败", func(t *testing.T) {
		resp := PutJSON(t, BaseURL+"/settings", map[string]interface{}{
			"max_recommendations": 0,
		}, token)

		assert.NotEqual(t, 0, resp.Code, "上限为0应该失败")

		t.Logf("✓ 参数校验正确: %s", resp.Message)
	})
}

// TestAdminOperations 测试缓存清理与批量导入开关
func TestAdminOperations(t *testing.T) {
	RequireServer(t)
	token := AdminToken(t)

	t.Run("手动清空缓存", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/admin/cache/clear", nil, token)

		assert.Equal(t, 0, resp.Code, "清空缓存失败: %s", resp.Message)

		// 清空后查询仍然正常(重新解析)
		recResp := GetJSON(t, BaseURL+"/recommendations?product_ids=1,2&store_id=1", "")
		assert.Equal(t, 0, recResp.Code, "清空后查询应正常")

		t.Log("✓ 手动清空缓存成功")
	})

	t.Run("批量导入开关", func(t *testing.T) {
		// 开启抑制
		beginResp := PostJSON(t, BaseURL+"/admin/import/begin", nil, token)
		require.Equal(t, 0, beginResp.Code, "开始导入失败: %s", beginResp.Message)

		var status ImportStatusData
		require.NoError(t, json.Unmarshal(beginResp.Data, &status))
		assert.True(t, status.Suppressed, "开始导入后应处于抑制状态")

		// 关闭抑制
		endResp := PostJSON(t, BaseURL+"/admin/import/end", nil, token)
		require.Equal(t, 0, endResp.Code, "结束导入失败: %s", endResp.Message)

		require.NoError(t, json.Unmarshal(endResp.Data, &status))
		assert.False(t, status.Suppressed, "结束导入后不应再抑制")

		t.Log("✓ 批量导入开关正常")
	})
}

// TestRecommendationsExcludeDeleted 测试删除商品后推荐不再包含它
func TestRecommendationsExcludeDeleted(t *testing.T) {
	RequireServer(t)
	token := AdminToken(t)

	// 创建并立刻删除一个商品,事件驱动失效后它不应出现在任何推荐中
	p := CreateTestProduct(t, token, "集成测试临时商品", 1900)

	delResp := DeleteJSON(t, fmt.Sprintf("%s/products/%d", BaseURL, p.ID), token)
	require.Equal(t, 0, delResp.Code, "删除商品失败: %s", delResp.Message)

	recResp := GetJSON(t, BaseURL+"/recommendations?product_ids=1,2,3&store_id=1", "")
	require.Equal(t, 0, recResp.Code)

	var rec RecommendationsData
	require.NoError(t, json.Unmarshal(recResp.Data, &rec))
	for _, item := range rec.Products {
		assert.NotEqual(t, p.ID, item.ID, "已删除商品不应出现在推荐中")
	}

	t.Log("✓ 已删除商品被排除")
}
