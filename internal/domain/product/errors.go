package product

import (
	apperrors "github.com/xiebiao/crosssell/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	// ErrReferenceDuplicate 同店铺货号已存在
	ErrReferenceDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "商品货号已存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrInvalidVisibility 无效的可见性取值
	ErrInvalidVisibility = apperrors.New(apperrors.ErrCodeInvalidParams, "可见性取值非法")

	// ErrInvalidStore 无效的店铺
	ErrInvalidStore = apperrors.New(apperrors.ErrCodeInvalidParams, "店铺ID非法")
)
