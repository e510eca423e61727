package consumers

import (
	"context"

	"cvmatch/internal/app/deps"
	dl "cvmatch/internal/core/domain/logging"
	cvanalyzed "cvmatch/internal/rabbitmq/consumers/cv_analyzed"
)

// initCVAnalyzedConsumer forwards analysis completion events to connected
// SSE clients of this API instance.
func initCVAnalyzedConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqCVAnalyzedQueue
	cvAnalyzedConsumer := cvanalyzed.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.SseServer,
	)
	if err = cvAnalyzedConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownCVAnalyzedConsumer := initCVAnalyzedConsumer(deps)

	return func() {
		shutdownCVAnalyzedConsumer()
	}
}
