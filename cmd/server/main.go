package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/IBM/sarama"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/vogiaan1904/ticketbottle-nftmarket/config"
	grpcSvc "github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/grpc"
	httpDelivery "github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/http"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka/consumer"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/infra/redis"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository"
	memRepo "github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository/memory"
	redisRepo "github.com/vogiaan1904/ticketbottle-nftmarket/internal/repository/redis"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
	pkgGrpc "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/grpc"
	pkgKafka "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/kafka"
	pkgLog "github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

type repositories struct {
	event   repository.EventRepository
	session repository.SessionRepository
	ticket  repository.TicketRepository
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
	})

	// Storage
	var repos repositories
	switch cfg.Store.Backend {
	case config.StoreRedis:
		redisCli, err := redis.Connect(ctx, cfg.Redis, l)
		if err != nil {
			l.Fatalf(ctx, "Failed to connect to Redis: %v", err)
		}
		defer redis.Disconnect(context.Background(), redisCli, l)

		repos = repositories{
			event:   redisRepo.NewRedisEventRepository(redisCli, l),
			session: redisRepo.NewRedisSessionRepository(redisCli, cfg.Session.TTL, l),
			ticket:  redisRepo.NewRedisTicketRepository(redisCli, cfg.Session.TTL, l),
		}
	default:
		repos = repositories{
			event:   memRepo.NewEventRepository(),
			session: memRepo.NewSessionRepository(),
			ticket:  memRepo.NewTicketRepository(),
		}
	}

	if err := repos.event.Seed(ctx, models.SeedEvents(cfg.Simulation.DefaultCurrency)); err != nil {
		l.Fatalf(ctx, "Failed to seed events: %v", err)
	}

	// Kafka
	prod := producer.NewNopProducer()
	var kafkaConsGr sarama.ConsumerGroup
	if cfg.Kafka.Enabled {
		kafkaSyncProd, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			RetryMax:     cfg.Kafka.ProducerRetryMax,
			RequiredAcks: cfg.Kafka.ProducerRequiredAcks,
			ClientID:     cfg.Kafka.ClientID,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka producer: %v", err)
		}
		prod = producer.NewProducer(kafkaSyncProd, l)
		defer prod.Close()

		kafkaConsGr, err = pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
			Brokers:  cfg.Kafka.Brokers,
			GroupID:  cfg.Kafka.ConsumerGroupID,
			ClientID: cfg.Kafka.ClientID,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka consumer: %v", err)
		}
	} else {
		l.Info(ctx, "Kafka disabled, domain events are not published")
	}

	// Simulator
	sim := service.NewSimulator(l, service.SimulatorConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err := sim.Start(ctx); err != nil {
		l.Fatalf(ctx, "Failed to start simulator: %v", err)
	}

	// Services
	guard := service.NewSessionGuard(repos.session)
	sessSvc := service.NewSessionService(guard, sim, repos.ticket, cfg.Session, l)
	walletSvc := service.NewWalletService(guard, sim, prod, cfg.Simulation, l)
	mktSvc := service.NewMarketplaceService(repos.event, repos.ticket, guard, sim, prod, cfg.Simulation, l)

	if kafkaConsGr != nil {
		cons := consumer.NewConsumer(kafkaConsGr, mktSvc, l)
		if err := cons.Start(ctx); err != nil {
			l.Fatalf(ctx, "Failed to start Kafka consumer: %v", err)
		}
		defer cons.Close()
	}

	// HTTP server
	h, err := httpDelivery.NewHandler(sessSvc, walletSvc, mktSvc, cfg.Session, cfg.Simulation, l)
	if err != nil {
		l.Fatalf(ctx, "Failed to initialize HTTP handler: %v", err)
	}

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      h.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// gRPC server
	lnr, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRpcPort))
	if err != nil {
		l.Fatalf(ctx, "gRPC server failed to listen: %v", err)
	}

	gRpcSrv := grpc.NewServer()
	pkgGrpc.RegisterTicketingServiceServer(gRpcSrv, grpcSvc.NewGrpcService(mktSvc, sim, l))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Infof(ctx, "HTTP server is listening on port: %d", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		l.Infof(ctx, "gRPC server is listening on port: %d", cfg.Server.GRpcPort)
		if err := gRpcSrv.Serve(lnr); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return sessSvc.RunJanitor(gctx, cfg.Session.SweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		l.Info(ctx, "Server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := sim.Stop(); err != nil {
			l.Warnf(shutdownCtx, "Failed to stop simulator: %v", err)
		}
		gRpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		l.Errorf(ctx, "Server exited with error: %v", err)
		return
	}

	l.Info(ctx, "Server exited")
}
