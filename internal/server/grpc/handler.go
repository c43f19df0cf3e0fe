package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/copyit/internal/api"
	"github.com/dmitrijs2005/copyit/internal/common"
	"github.com/dmitrijs2005/copyit/internal/server/models"
	"github.com/dmitrijs2005/copyit/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var authCodeStatus = map[string]codes.Code{
	common.AuthInvalidEmail:        codes.InvalidArgument,
	common.AuthWeakPassword:        codes.InvalidArgument,
	common.AuthInvalidCredential:   codes.InvalidArgument,
	common.AuthUserNotFound:        codes.NotFound,
	common.AuthWrongPassword:       codes.Unauthenticated,
	common.AuthUserDisabled:        codes.PermissionDenied,
	common.AuthEmailAlreadyInUse:   codes.AlreadyExists,
	common.AuthOperationNotAllowed: codes.FailedPrecondition,
}

// authError turns an identity provider failure into a status whose message
// is the auth code.
func (s *GRPCServer) authError(ctx context.Context, err error) error {
	var ae *common.AuthCodeError
	if errors.As(err, &ae) {
		code, ok := authCodeStatus[ae.Code]
		if !ok {
			code = codes.Unknown
		}
		return status.Error(code, ae.Code)
	}
	s.logger.Error(ctx, "auth failure", "error", err)
	return status.Error(codes.Internal, common.AuthInternalError)
}

func (s *GRPCServer) entryError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyField):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "entry not found")
	}
	s.logger.Error(ctx, "entry operation failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func toAPIEntry(e *models.Entry) *api.Entry {
	out := &api.Entry{Id: e.ID, UserId: e.UserID, Title: e.Title, Content: e.Content}
	if !e.CreatedAt.IsZero() {
		out.CreatedAt = timestamppb.New(e.CreatedAt)
	}
	return out
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SignUpResponse, error) {
	u, err := s.users.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.authError(ctx, err)
	}
	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return &api.SignUpResponse{UserId: u.ID}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *api.SignInRequest) (*api.Session, error) {
	u, pair, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.authError(ctx, err)
	}
	return &api.Session{UserId: u.ID, Email: u.Email, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.Session, error) {
	u, pair, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRefreshTokenExpired):
			return nil, status.Error(codes.Unauthenticated, err.Error())
		case errors.Is(err, common.ErrorUnauthorized):
			return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
		}
		s.logger.Error(ctx, "refresh failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &api.Session{UserId: u.ID, Email: u.Email, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *api.SignOutRequest) (*api.SignOutResponse, error) {
	if err := s.users.SignOut(ctx, req.RefreshToken); err != nil {
		s.logger.Error(ctx, "sign out failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &api.SignOutResponse{}, nil
}

func (s *GRPCServer) CreateEntry(ctx context.Context, req *api.CreateEntryRequest) (*api.CreateEntryResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	e, err := s.entries.Create(ctx, userID, req.Title, req.Content)
	if err != nil {
		return nil, s.entryError(ctx, err)
	}
	return &api.CreateEntryResponse{Entry: toAPIEntry(e)}, nil
}

func (s *GRPCServer) UpdateEntry(ctx context.Context, req *api.UpdateEntryRequest) (*api.UpdateEntryResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	if err := s.entries.Update(ctx, userID, req.Id, req.Title, req.Content); err != nil {
		return nil, s.entryError(ctx, err)
	}
	return &api.UpdateEntryResponse{}, nil
}

func (s *GRPCServer) DeleteEntry(ctx context.Context, req *api.DeleteEntryRequest) (*api.DeleteEntryResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	if err := s.entries.Delete(ctx, userID, req.Id); err != nil {
		return nil, s.entryError(ctx, err)
	}
	return &api.DeleteEntryResponse{}, nil
}

func (s *GRPCServer) WatchEntries(_ *api.WatchEntriesRequest, stream grpc.ServerStreamingServer[api.EntrySnapshot]) error {
	ctx := stream.Context()
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "missing token")
	}

	err := s.entries.Watch(ctx, userID, func(list []*models.Entry) error {
		snap := &api.EntrySnapshot{Entries: make([]*api.Entry, 0, len(list))}
		for _, e := range list {
			snap.Entries = append(snap.Entries, toAPIEntry(e))
		}
		return stream.Send(snap)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return s.entryError(ctx, err)
	}
	return nil
}

func (s *GRPCServer) ExportEntries(ctx context.Context, req *api.ExportEntriesRequest) (*api.ExportEntriesResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	key, url, err := s.entries.Export(ctx, userID)
	if err != nil {
		return nil, s.entryError(ctx, err)
	}
	return &api.ExportEntriesResponse{Key: key, Url: url}, nil
}
