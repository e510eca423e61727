package deps

import (
	"context"
	"sync"
	"time"

	"cvmatch/internal/config"
	"cvmatch/internal/core/domain/cv"
	"cvmatch/internal/core/domain/job"
	dl "cvmatch/internal/core/domain/logging"
	drl "cvmatch/internal/core/domain/rate_limiter"
	duow "cvmatch/internal/core/domain/unit_of_work"
	"cvmatch/internal/core/domain/user"
	dbcv "cvmatch/internal/db/cv"
	dbjob "cvmatch/internal/db/job"
	uow "cvmatch/internal/db/unit_of_work"
	dbuser "cvmatch/internal/db/user"
	"cvmatch/internal/implementations/email"
	"cvmatch/internal/implementations/extractor"
	"cvmatch/internal/implementations/logging"
	passwordhasher "cvmatch/internal/implementations/password_hasher"
	profileanalyzer "cvmatch/internal/implementations/profile_analyzer"
	ratelimiter "cvmatch/internal/implementations/rate_limiter"
	resettoken "cvmatch/internal/implementations/reset_token"
	"cvmatch/internal/implementations/session"
	"cvmatch/internal/implementations/storage"
	"cvmatch/internal/rabbitmq"
	cvanalysis "cvmatch/internal/rabbitmq/publishers/cv_analysis"
	cvanalyzed "cvmatch/internal/rabbitmq/publishers/cv_analyzed"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
	"google.golang.org/genai"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork            duow.UnitOfWork
	UserRepository        user.UserRepository
	SessionRepository     user.SessionRepository
	ResetTokenRepository  user.ResetTokenRepository
	CVRepository          cv.Repository
	JobRepository         job.JobRepository
	SavedJobRepository    job.SavedJobRepository
	ApplicationRepository job.ApplicationRepository
	MatchRepository       job.MatchRepository

	RateLimiter drl.RateLimiter

	EmailSender *email.EmailSender

	PasswordHasher        user.PasswordHasher
	SessionTokenGenerator user.SessionTokenGenerator
	ResetTokenGenerator   user.ResetTokenGenerator
	ResetTokenHasher      user.ResetTokenHasher

	FileStorage      cv.FileStorage
	FileKeyGenerator cv.FileKeyGenerator
	TextExtractor    cv.TextExtractor
	ProfileAnalyzer  cv.ProfileAnalyzer

	AnalysisScheduler      cv.AnalysisScheduler
	AnalyzedEventPublisher cv.AnalyzedEventPublisher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.ResetTokenRepository = dbuser.NewPgxResetTokenRepository(deps.DB)
	deps.CVRepository = dbcv.NewPgxRepository(deps.DB)
	deps.JobRepository = dbjob.NewPgxJobRepository(deps.DB)
	deps.SavedJobRepository = dbjob.NewPgxSavedJobRepository(deps.DB)
	deps.ApplicationRepository = dbjob.NewPgxApplicationRepository(deps.DB)
	deps.MatchRepository = dbjob.NewPgxMatchRepository(deps.DB)

	deps.RateLimiter = deps.initRateLimiter()

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailPasswordResetTemplate,
		deps.Config.AwsEmailPasswordResetBaseUrl,
	)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.SessionTokenGenerator = session.NewUUID()
	deps.ResetTokenGenerator = resettoken.NewGenerator()
	deps.ResetTokenHasher = resettoken.NewBcryptHasher(deps.Config.BcryptHasherCost)

	deps.FileStorage = storage.NewS3(s3.NewFromConfig(deps.AwsConfig), deps.Config.AwsS3Bucket)
	deps.FileKeyGenerator = storage.NewKeyGenerator()
	deps.TextExtractor = extractor.New()
	deps.ProfileAnalyzer = deps.initProfileAnalyzer()

	closePublishers := deps.initRabbitmqPublishers()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closePublishers,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	if deps.Config.RedisURL == "" {
		return func() {}
	}
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

// initRateLimiter falls back to a per-process in-memory limiter when no
// Redis URL is configured. The in-memory limiter does not share state
// between instances.
func (deps *Deps) initRateLimiter() drl.RateLimiter {
	if deps.Redis == nil {
		deps.Logger.Info(context.Background(), "Using in-memory rate limiter.")
		return ratelimiter.NewMemory(deps.Now)
	}
	return ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initRabbitmqPublishers() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	err = rabbitmqChannel.ExchangeDeclare(
		deps.Config.RabbitmqCVExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}
	for _, queue := range []string{deps.Config.RabbitmqCVUploadedQueue, deps.Config.RabbitmqCVAnalyzedQueue} {
		if _, err := rabbitmqChannel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
			panic(err)
		}
		if err := rabbitmqChannel.QueueBind(
			queue,
			queue,
			deps.Config.RabbitmqCVExchange,
			false,
			nil,
		); err != nil {
			deps.Logger.Error(context.Background(), "Could not bind queue to RabbitMQ exchange.", dl.Entry("err", err))
			panic(err)
		}
	}

	deps.AnalysisScheduler = cvanalysis.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqCVExchange,
		deps.Config.RabbitmqCVUploadedQueue,
	)
	deps.AnalyzedEventPublisher = cvanalyzed.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqCVExchange,
		deps.Config.RabbitmqCVAnalyzedQueue,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ publishers.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ publishers shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initProfileAnalyzer() cv.ProfileAnalyzer {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  deps.Config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create Gemini client.", dl.Entry("err", err))
		panic(err)
	}
	return profileanalyzer.NewGemini(client, deps.Config.GeminiModel)
}
