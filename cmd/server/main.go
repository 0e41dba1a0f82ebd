package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/cryptodash-backend/internal/adapter/grpc"
	"github.com/simaogato/cryptodash-backend/internal/app"
	"github.com/simaogato/cryptodash-backend/internal/config"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log, err := cfg.NewLogger()
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	// 2. Wire services and seed the session wallet
	ctx := context.Background()
	services, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	log.WithField("live_data", cfg.LiveData).Info("Session wallet seeded successfully")

	// 3. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.UnaryInterceptor(grpcadapter.LoggingInterceptor(log)),
	)

	grpcAdapter := grpcadapter.NewServer(
		services.Market,
		services.Converter,
		services.News,
		services.Wallet,
		services.Dashboard,
	)
	grpcadapter.RegisterDashboardServiceServer(grpcServer, grpcAdapter)

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GRPCAddr, err)
	}

	// Start server in a goroutine
	go func() {
		log.Infof("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(grpcServer *grpclib.Server, log logrus.FieldLogger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Infof("Received signal: %v. Shutting down gracefully...", sig)

	grpcServer.GracefulStop()
	log.Info("gRPC server stopped")
}
