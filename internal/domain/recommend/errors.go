package recommend

import apperrors "github.com/xiebiao/crosssell/pkg/errors"

// 推荐领域错误定义
var (
	// ErrDataUnavailable 订单数据源不可用(展示层应降级为空推荐而不是报错)
	ErrDataUnavailable = apperrors.New(apperrors.ErrCodeDataUnavailable, "推荐数据源不可用")
)
