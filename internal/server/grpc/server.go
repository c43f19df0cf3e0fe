// Package grpc exposes the user and entry services over the CopyIt gRPC API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/copyit/internal/api"
	"github.com/dmitrijs2005/copyit/internal/logging"
	"github.com/dmitrijs2005/copyit/internal/server/models"
	"github.com/dmitrijs2005/copyit/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.User, *services.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
}

type EntryService interface {
	Create(ctx context.Context, userID, title, content string) (*models.Entry, error)
	Update(ctx context.Context, userID, id, title, content string) error
	Delete(ctx context.Context, userID, id string) error
	Watch(ctx context.Context, userID string, send func([]*models.Entry) error) error
	Export(ctx context.Context, userID string) (string, string, error)
}

type GRPCServer struct {
	api.UnimplementedCopyItServiceServer
	address   string
	users     UserService
	entries   EntryService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us UserService, es EntryService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		entries:   es,
		jwtSecret: []byte(secretKey),
	}
}

// Run serves until ctx is done, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.streamAccessTokenInterceptor),
	)

	api.RegisterCopyItServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	return srv.Serve(listen)
}
