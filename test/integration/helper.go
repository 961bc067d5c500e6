package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：测试辅助工具
// 集成测试需要一个已启动的服务实例（go run ./cmd/api）以及它依赖的
// MySQL/Redis/RabbitMQ。服务不可达时测试自动跳过，不会误报失败。
//
// 管理接口的测试还需要环境变量CROSSSELL_TEST_ADMIN_TOKEN（有效的管理Token），
// 未设置时跳过相关用例。

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RecommendationsData 推荐查询响应数据
type RecommendationsData struct {
	Products  []RecommendedProduct `json:"products"`
	ShowPrice bool                 `json:"show_price"`
}

// RecommendedProduct 推荐商品项
type RecommendedProduct struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Reference string `json:"reference"`
	Price     int64  `json:"price"`
	PriceYuan string `json:"price_yuan"`
}

// ProductData 商品响应数据
type ProductData struct {
	ID                uint   `json:"id"`
	StoreID           uint   `json:"store_id"`
	Name              string `json:"name"`
	Reference         string `json:"reference"`
	Price             int64  `json:"price"`
	Active            bool   `json:"active"`
	Visibility        string `json:"visibility"`
	DefaultCategoryID uint   `json:"default_category_id"`
}

// SettingsData 推荐设置响应数据
type SettingsData struct {
	MaxRecommendations int  `json:"max_recommendations"`
	ShowPrice          bool `json:"show_price"`
}

// ImportStatusData 批量导入状态响应数据
type ImportStatusData struct {
	Suppressed bool `json:"suppressed"`
}

// RequireServer 检查服务是否可达，不可达时跳过测试
func RequireServer(t *testing.T) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务未启动(%v), 跳过集成测试", err)
	}
	resp.Body.Close()
}

// AdminToken 获取管理Token，未配置时跳过测试
func AdminToken(t *testing.T) string {
	token := os.Getenv("CROSSSELL_TEST_ADMIN_TOKEN")
	if token == "" {
		t.Skip("未设置CROSSSELL_TEST_ADMIN_TOKEN, 跳过管理接口测试")
	}
	return token
}

// DoJSON 发送HTTP请求并解析JSON响应
//
// 教学说明：
// - 使用*testing.T参数，可以在失败时立即终止测试
// - 使用require包进行断言，失败会立即停止（不继续执行）
// - 返回*Response而非error，简化调用方代码
func DoJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return DoJSON(t, http.MethodGet, url, nil, token)
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return DoJSON(t, http.MethodPost, url, data, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return DoJSON(t, http.MethodPut, url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return DoJSON(t, http.MethodDelete, url, nil, token)
}

// GenerateTestReference 生成唯一的测试商品编码
// 使用纳秒时间戳确保唯一性，避免测试重复运行时编码冲突
func GenerateTestReference(prefix string) string {
	return fmt.Sprintf("TEST-%s-%d", prefix, time.Now().UnixNano())
}

// CreateTestProduct 创建测试商品并返回商品数据
//
// 教学说明：
// 这是一个"高阶"辅助函数，封装了商品创建流程，
// 让测试更关注业务逻辑而非基础设施
func CreateTestProduct(t *testing.T, token string, name string, price int64) *ProductData {
	req := map[string]interface{}{
		"store_id":            1,
		"name":                name,
		"reference":           GenerateTestReference("P"),
		"price":               price,
		"visibility":          "both",
		"default_category_id": 1,
	}

	resp := PostJSON(t, BaseURL+"/products", req, token)
	require.Equal(t, 0, resp.Code, "创建商品失败: %s", resp.Message)

	var data ProductData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析商品响应失败")

	return &data
}
