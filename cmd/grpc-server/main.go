package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"recipehub/internal/grpcserver"
	"recipehub/pkg/database"
	"recipehub/pkg/logger"
	"recipehub/pkg/utils"
)

func main() {
	utils.LoadDotEnv()
	logger.Init()
	defer logger.Sync()
	log := logger.L()

	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	grpcCfg := utils.LoadGrpcConfig()
	listener, err := net.Listen("tcp", grpcCfg.Addr)
	if err != nil {
		log.Fatal("grpc listen failed", zap.Error(err))
	}

	grpcServer := grpc.NewServer()
	grpcserver.NewServer(db, log.Named("grpc")).Register(grpcServer)
	reflection.Register(grpcServer)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Info("shutdown signal received", zap.Stringer("signal", sig))
		grpcServer.GracefulStop()
	}()

	log.Info("gRPC server listening", zap.String("addr", grpcCfg.Addr))
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatal("grpc server stopped", zap.Error(err))
	}
}
