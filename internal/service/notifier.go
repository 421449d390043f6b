package service

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/example/myshop/internal/datamodels/product"
)

const catalogEventsQueue = "catalog_events"

// Notifier 目录变更通知，发布失败不影响目录操作本身
type Notifier interface {
	CatalogChanged(action string, id product.ID)
}

// CatalogEvent 写入 MQ 的事件体
type CatalogEvent struct {
	Action    string     `json:"action"` // created / updated / deleted / imported / reset
	ProductID product.ID `json:"product_id,omitempty"`
	At        time.Time  `json:"at"`
}

// MQNotifier 把目录变更事件发布到 RabbitMQ 队列
type MQNotifier struct {
	ch *amqp.Channel
}

func NewMQNotifier(conn *amqp.Connection) (*MQNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if _, err := ch.QueueDeclare(catalogEventsQueue, true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &MQNotifier{ch: ch}, nil
}

func (n *MQNotifier) CatalogChanged(action string, id product.ID) {
	body, err := json.Marshal(CatalogEvent{
		Action:    action,
		ProductID: id,
		At:        time.Now(),
	})
	if err != nil {
		return
	}
	if err := n.ch.Publish("", catalogEventsQueue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	}); err != nil {
		zap.L().Warn("publish catalog event failed",
			zap.String("action", action),
			zap.Error(err))
	}
}

// Close 释放 MQ 通道
func (n *MQNotifier) Close() error {
	return n.ch.Close()
}
