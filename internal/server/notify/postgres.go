package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/copyit/internal/dbx"
	"github.com/dmitrijs2005/copyit/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const Channel = "entry_changes"

// listenConn is the part of *pgx.Conn used by Listen.
type listenConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

// connect is a seam for tests.
var connect = func(ctx context.Context, dsn string) (listenConn, error) {
	return pgx.Connect(ctx, dsn)
}

// PostgresNotifier publishes owner changes with pg_notify and, through
// Listen, relays every instance's notifications into a local Hub.
type PostgresNotifier struct {
	db     dbx.DBTX
	hub    *Hub
	logger logging.Logger
	retry  time.Duration
}

func NewPostgresNotifier(db dbx.DBTX, hub *Hub, logger logging.Logger) *PostgresNotifier {
	return &PostgresNotifier{
		db:     db,
		hub:    hub,
		logger: logger.With("module", "notify"),
		retry:  time.Second,
	}
}

// Notify signals the local hub and sends userID on the entry_changes
// channel for the other instances. The echo from LISTEN coalesces with
// the local signal.
func (n *PostgresNotifier) Notify(ctx context.Context, userID string) error {
	n.hub.Publish(userID)
	if _, err := n.db.ExecContext(ctx, `SELECT pg_notify($1, $2)`, Channel, userID); err != nil {
		return fmt.Errorf("pg_notify: %w", err)
	}
	return nil
}

// Listen holds a dedicated connection subscribed to entry_changes and
// publishes each payload to the hub. It reconnects after failures and
// returns when ctx is done. Every (re)subscription resyncs all local
// streams, since notifications sent while disconnected are lost.
func (n *PostgresNotifier) Listen(ctx context.Context, dsn string) {
	for {
		err := n.listenOnce(ctx, dsn)
		if ctx.Err() != nil {
			return
		}
		n.logger.Warn(ctx, "change listener stopped, reconnecting", "error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(n.retry):
		}
	}
}

func (n *PostgresNotifier) listenOnce(ctx context.Context, dsn string) error {
	conn, err := connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	n.logger.Info(ctx, "listening for entry changes")
	n.hub.PublishAll()

	for {
		msg, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if msg.Payload == "" {
			n.logger.Warn(ctx, "empty change notification")
			continue
		}
		n.hub.Publish(msg.Payload)
	}
}
