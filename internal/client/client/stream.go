package client

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/copyit/internal/api"
	"github.com/dmitrijs2005/copyit/internal/client/models"
	"google.golang.org/grpc"
)

// WatchEntries opens the snapshot stream and waits for the first snapshot,
// so an expired access token is detected here and refreshed once.
func (s *GRPCClient) WatchEntries(ctx context.Context) (EntryStream, error) {
	ctx, cancel := context.WithCancel(ctx)

	stream, first, err := s.openWatch(ctx)
	if err != nil && isTokenExpired(err) {
		if rerr := s.refresh(ctx); rerr == nil {
			stream, first, err = s.openWatch(ctx)
		}
	}
	if err != nil {
		cancel()
		return nil, mapError(err, false)
	}
	return &entryStream{stream: stream, pending: first, cancel: cancel}, nil
}

func (s *GRPCClient) openWatch(ctx context.Context) (grpc.ServerStreamingClient[api.EntrySnapshot], *api.EntrySnapshot, error) {
	stream, err := s.client.WatchEntries(withAccessToken(ctx, s.currentAccessToken()), &api.WatchEntriesRequest{})
	if err != nil {
		return nil, nil, err
	}
	first, err := stream.Recv()
	if err != nil {
		return nil, nil, err
	}
	return stream, first, nil
}

type entryStream struct {
	stream  grpc.ServerStreamingClient[api.EntrySnapshot]
	pending *api.EntrySnapshot
	cancel  context.CancelFunc
}

// Recv returns io.EOF when the server ends the stream.
func (e *entryStream) Recv() ([]models.Entry, error) {
	snap := e.pending
	e.pending = nil
	if snap == nil {
		var err error
		snap, err = e.stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, mapError(err, false)
		}
	}

	out := make([]models.Entry, 0, len(snap.Entries))
	for _, en := range snap.Entries {
		out = append(out, fromAPIEntry(en))
	}
	return out, nil
}

func (e *entryStream) Close() error {
	e.cancel()
	return nil
}
