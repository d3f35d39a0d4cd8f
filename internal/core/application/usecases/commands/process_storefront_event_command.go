package commands

import (
	"errors"
	"fmt"

	"medex/internal/core/domain/model/storefront"
	"medex/internal/pkg/guard"
)

var (
	ErrProcessStorefrontEventCommandIsNotConstructed = errors.New(
		"ProcessStorefrontEventCommand must be created via NewProcessStorefrontEventCommand constructor",
	)
	ErrUnsupportedTopic = errors.New("unsupported webhook topic")
	ErrOrderBodyMissing = errors.New("order body is required")
)

// Topic is a WooCommerce webhook topic the relay acts on.
type Topic string

const (
	TopicOrderCreated Topic = "order.created"
	TopicOrderUpdated Topic = "order.updated"
)

func (t Topic) Validate() error {
	switch t {
	case TopicOrderCreated, TopicOrderUpdated:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedTopic, string(t))
}

// ProcessStorefrontEventCommand carries a webhook delivery into the relay.
type ProcessStorefrontEventCommand struct { //nolint:recvcheck //using for validation
	topic Topic
	order storefront.Order

	guard guard.ConstructorGuard
}

func NewProcessStorefrontEventCommand(topic Topic, order *storefront.Order) (ProcessStorefrontEventCommand, error) {
	var orderErr error
	if order == nil || order.ID <= 0 {
		orderErr = ErrOrderBodyMissing
	}
	if err := errors.Join(topic.Validate(), orderErr); err != nil {
		return ProcessStorefrontEventCommand{}, err
	}

	return ProcessStorefrontEventCommand{
		topic: topic,
		order: *order,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessStorefrontEventCommand) Validate() error {
	return c.guard.Validate(ErrProcessStorefrontEventCommandIsNotConstructed)
}

func (c ProcessStorefrontEventCommand) Topic() Topic {
	return c.topic
}

func (c ProcessStorefrontEventCommand) Order() storefront.Order {
	return c.order
}
