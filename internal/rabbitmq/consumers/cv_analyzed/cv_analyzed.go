package cvanalyzed

import (
	"context"
	"fmt"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/rabbitmq"
	"cvmatch/internal/rabbitmq/schema"

	"github.com/r3labs/sse/v2"
	"github.com/rabbitmq/amqp091-go"
)

// Consumer forwards analysis completion events to the owner's SSE stream so
// a connected browser sees the status change without polling.
type Consumer struct {
	log       logging.Logger
	channel   *rabbitmq.Channel
	queue     string
	sseServer *sse.Server
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	sseServer *sse.Server,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &Consumer{log: log, channel: channel, queue: queue, sseServer: sseServer}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			msg := &schema.CVAnalyzed{}
			if err := msg.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal CV analyzed message.",
					logging.Entry("err", err),
					logging.Entry("delivery", delivery),
				)
				c.Ack(delivery)
				continue
			}

			streamID := fmt.Sprintf("%d", msg.UserID)
			if c.sseServer.StreamExists(streamID) {
				c.sseServer.Publish(streamID, &sse.Event{
					Event: []byte("cv_analyzed"),
					Data:  delivery.Body,
				})
			}
			c.log.Info(
				context.Background(),
				"CV analyzed event processed.",
				logging.Entry("cvID", msg.CVID),
				logging.Entry("userID", msg.UserID),
			)
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
