// Package event publishes catalog domain events to Kafka. Publishing is
// best effort: a failed publish is logged and never fails the request that
// triggered it.
package event

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/petdailykit/catalog/internal/domain"
	"github.com/petdailykit/catalog/pkg/kafka"
	"github.com/petdailykit/catalog/pkg/logger"
)

const (
	source        = "catalog-service"
	aggregateType = "product"

	TopicProductCreated = "catalog.product.created"
	TopicProductUpdated = "catalog.product.updated"
	TopicProductDeleted = "catalog.product.deleted"
)

// Publisher emits product lifecycle events.
type Publisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

func NewPublisher(producer *kafka.Producer, log *slog.Logger) *Publisher {
	return &Publisher{producer: producer, logger: log}
}

// ProductDeleted is the payload of a catalog.product.deleted event. Created
// and updated events carry the full product as payload.
type ProductDeleted struct {
	ID int64 `json:"id"`
}

func (p *Publisher) ProductCreated(ctx context.Context, product *domain.Product) {
	p.publish(ctx, TopicProductCreated, product.ID, product)
}

func (p *Publisher) ProductUpdated(ctx context.Context, product *domain.Product) {
	p.publish(ctx, TopicProductUpdated, product.ID, product)
}

func (p *Publisher) ProductDeleted(ctx context.Context, id int64) {
	p.publish(ctx, TopicProductDeleted, id, ProductDeleted{ID: id})
}

func (p *Publisher) publish(ctx context.Context, topic string, productID int64, payload any) {
	evt, err := kafka.NewEvent(topic, strconv.FormatInt(productID, 10), aggregateType, source, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("topic", topic),
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()))
		return
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("topic", topic),
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()))
	}
}
