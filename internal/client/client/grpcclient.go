package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/copyit/internal/api"
	"github.com/dmitrijs2005/copyit/internal/client/models"
	"github.com/dmitrijs2005/copyit/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

const authTimeout = 12 * time.Second

var errNoRefreshToken = errors.New("no refresh token")

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.CopyItServiceClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	onRefresh    func(*Session)
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	conn, err := grpc.NewClient(endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewCopyItServiceClient(conn)
	return c, nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) currentAccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// storeSession records freshly issued tokens and reports the rotation.
func (s *GRPCClient) storeSession(resp *api.Session, notify bool) *Session {
	s.mu.Lock()
	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	fn := s.onRefresh
	s.mu.Unlock()

	sess := &Session{UserID: resp.UserId, Email: resp.Email, RefreshToken: resp.RefreshToken}
	if notify && fn != nil {
		fn(sess)
	}
	return sess
}

func (s *GRPCClient) refresh(ctx context.Context) error {
	s.mu.Lock()
	rt := s.refreshToken
	s.mu.Unlock()
	if rt == "" {
		return errNoRefreshToken
	}

	resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: rt})
	if err != nil {
		return err
	}
	s.storeSession(resp, true)
	return nil
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	err := invoker(withAccessToken(ctx, s.currentAccessToken()), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) {
		return err
	}

	if rerr := s.refresh(ctx); rerr != nil {
		return err
	}
	return invoker(withAccessToken(ctx, s.currentAccessToken()), method, req, reply, cc, opts...)
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err, false)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) SignUp(ctx context.Context, email, password string) error {
	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	_, err := s.client.SignUp(ctx, &api.SignUpRequest{Email: email, Password: password})
	return mapError(err, true)
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	resp, err := s.client.SignIn(ctx, &api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err, true)
	}
	return s.storeSession(resp, false), nil
}

// RefreshToken rotates the given refresh token and adopts the new pair.
func (s *GRPCClient) RefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, mapError(err, false)
	}
	return s.storeSession(resp, false), nil
}

// SignOut revokes the refresh token on the server and forgets both tokens.
// The tokens are dropped even when the server call fails.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	s.mu.Lock()
	rt := s.refreshToken
	s.accessToken, s.refreshToken = "", ""
	s.mu.Unlock()

	if rt == "" {
		return nil
	}
	_, err := s.client.SignOut(ctx, &api.SignOutRequest{RefreshToken: rt})
	return mapError(err, false)
}

func (s *GRPCClient) SetRefreshToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshToken = token
	s.accessToken = ""
}

func (s *GRPCClient) OnRefresh(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

func (s *GRPCClient) CreateEntry(ctx context.Context, title, content string) (*models.Entry, error) {
	resp, err := s.client.CreateEntry(ctx, &api.CreateEntryRequest{Title: title, Content: content})
	if err != nil {
		return nil, mapError(err, false)
	}
	e := fromAPIEntry(resp.Entry)
	return &e, nil
}

func (s *GRPCClient) UpdateEntry(ctx context.Context, id, title, content string) error {
	_, err := s.client.UpdateEntry(ctx, &api.UpdateEntryRequest{Id: id, Title: title, Content: content})
	return mapError(err, false)
}

func (s *GRPCClient) DeleteEntry(ctx context.Context, id string) error {
	_, err := s.client.DeleteEntry(ctx, &api.DeleteEntryRequest{Id: id})
	return mapError(err, false)
}

func (s *GRPCClient) ExportEntries(ctx context.Context) (string, string, error) {
	resp, err := s.client.ExportEntries(ctx, &api.ExportEntriesRequest{})
	if err != nil {
		return "", "", mapError(err, false)
	}
	return resp.Key, resp.Url, nil
}

func fromAPIEntry(e *api.Entry) models.Entry {
	if e == nil {
		return models.Entry{}
	}
	out := models.Entry{ID: e.Id, UserID: e.UserId, Title: e.Title, Content: e.Content}
	if e.CreatedAt != nil {
		out.CreatedAt = e.CreatedAt.AsTime()
	}
	return out
}
