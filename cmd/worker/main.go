package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cvmatch/internal/app/deps"
	"cvmatch/internal/app/services"
	dl "cvmatch/internal/core/domain/logging"
	cvuploaded "cvmatch/internal/rabbitmq/consumers/cv_uploaded"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		log.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	defer rabbitmqChannel.Close()

	queue := deps.Config.RabbitmqCVUploadedQueue
	cvUploadedConsumer := cvuploaded.New(
		log,
		rabbitmqChannel,
		queue,
		services.AnalyzeCV,
	)
	if err := cvUploadedConsumer.Consume(); err != nil {
		log.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	log.Info(context.Background(), "CV analysis worker has started.", dl.Entry("queue", queue))

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	log.Info(context.Background(), "Stopping CV analysis worker.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
