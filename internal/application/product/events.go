package product

import "log"

// 目录变更事件的路由键
const (
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher 事件发布端口
// *mq.Publisher直接满足该接口(application层不依赖AMQP细节,便于Mock测试)
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// ProductEvent 目录变更事件载荷
type ProductEvent struct {
	ProductID uint `json:"product_id"`
	StoreID   uint `json:"store_id"`
}

// publishEvent 发布目录变更事件
// 发布失败只记日志不报错:商品写入已成功,事件丢失由缓存TTL兜底,
// 不能因为MQ抖动让管理操作失败
func publishEvent(publisher EventPublisher, routingKey string, event ProductEvent) {
	if err := publisher.Publish(routingKey, event); err != nil {
		log.Printf("⚠️  发布目录变更事件失败: RoutingKey=%s, ProductID=%d, err=%v",
			routingKey, event.ProductID, err)
	}
}
