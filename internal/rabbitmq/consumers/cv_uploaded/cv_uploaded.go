package cvuploaded

import (
	"context"

	"cvmatch/internal/core/domain/cv"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/services"
	analyzecv "cvmatch/internal/core/services/analyze_cv"
	"cvmatch/internal/rabbitmq"
	"cvmatch/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Consumer runs CV analysis for every uploaded event on the queue.
type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[analyzecv.Input, analyzecv.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[analyzecv.Input, analyzecv.Result],
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
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			msg := &schema.CVUploaded{}
			if err := msg.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal CV uploaded message.",
					logging.Entry("err", err),
					logging.Entry("delivery", delivery),
				)
				c.Ack(delivery)
				continue
			}

			c.log.Info(
				context.Background(),
				"Got CV for analysis.",
				logging.Entry("cvID", msg.CVID),
			)
			_, err := c.service.Run(context.Background(), analyzecv.Input{CVID: cv.ID(msg.CVID)})
			if err != nil {
				c.log.Error(
					context.Background(),
					"Could not analyze CV, service returned an error.",
					logging.Entry("cvID", msg.CVID),
					logging.Entry("err", err),
				)
			}
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
