package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/copyit/internal/logging"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresNotifier_Notify(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	hub := NewHub()
	n := NewPostgresNotifier(db, hub, logging.Nop{})

	mock.ExpectExec(`SELECT pg_notify\(\$1, \$2\)`).
		WithArgs(Channel, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, n.Notify(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNotifier_NotifySignalsLocalHubWithoutListener(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	hub := NewHub()
	sub := hub.Subscribe("u1")
	defer sub.Close()
	other := hub.Subscribe("u2")
	defer other.Close()

	n := NewPostgresNotifier(db, hub, logging.Nop{})
	mock.ExpectExec(`pg_notify`).WithArgs(Channel, "u1").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, n.Notify(context.Background(), "u1"))
	assert.True(t, received(sub.C()))
	assert.False(t, received(other.C()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNotifier_NotifyFallsBackToLocalHub(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	hub := NewHub()
	sub := hub.Subscribe("u1")
	defer sub.Close()

	n := NewPostgresNotifier(db, hub, logging.Nop{})
	mock.ExpectExec(`pg_notify`).WillReturnError(errors.New("down"))

	require.Error(t, n.Notify(context.Background(), "u1"))
	assert.True(t, received(sub.C()))
}

type fakeConn struct {
	mu       sync.Mutex
	execs    []string
	payloads chan string
	waiting  chan struct{}
	closed   bool
}

func (c *fakeConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.execs = append(c.execs, sql)
	return pgconn.NewCommandTag("LISTEN"), nil
}

func (c *fakeConn) WaitForNotification(ctx context.Context) (*pgconn.Notification, error) {
	if c.waiting != nil {
		select {
		case c.waiting <- struct{}{}:
		default:
		}
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case p := <-c.payloads:
		return &pgconn.Notification{Channel: Channel, Payload: p}, nil
	}
}

func (c *fakeConn) Close(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func TestPostgresNotifier_ListenRelaysToHub(t *testing.T) {
	conn := &fakeConn{payloads: make(chan string, 2), waiting: make(chan struct{}, 1)}

	orig := connect
	connect = func(context.Context, string) (listenConn, error) { return conn, nil }
	t.Cleanup(func() { connect = orig })

	hub := NewHub()
	sub := hub.Subscribe("u1")
	defer sub.Close()

	n := NewPostgresNotifier(nil, hub, logging.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.Listen(ctx, "dsn")
		close(done)
	}()

	select {
	case <-conn.waiting:
	case <-time.After(time.Second):
		t.Fatal("listener did not start")
	}
	// drain the resync signal sent after LISTEN
	assert.True(t, received(sub.C()))

	conn.payloads <- ""
	conn.payloads <- "u1"
	assert.True(t, received(sub.C()))

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Listen did not return after cancel")
	}

	conn.mu.Lock()
	defer conn.mu.Unlock()
	assert.Equal(t, []string{"LISTEN entry_changes"}, conn.execs)
	assert.True(t, conn.closed)
}

func TestPostgresNotifier_ListenRetriesConnect(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	orig := connect
	connect = func(context.Context, string) (listenConn, error) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		return nil, errors.New("refused")
	}
	t.Cleanup(func() { connect = orig })

	n := NewPostgresNotifier(nil, NewHub(), logging.Nop{})
	n.retry = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	n.Listen(ctx, "dsn")

	mu.Lock()
	defer mu.Unlock()
	assert.Greater(t, attempts, 1)
}

func TestPostgresNotifier_ListenResyncsSubscribers(t *testing.T) {
	conn := &fakeConn{payloads: make(chan string)}

	orig := connect
	connect = func(context.Context, string) (listenConn, error) { return conn, nil }
	t.Cleanup(func() { connect = orig })

	hub := NewHub()
	a := hub.Subscribe("u1")
	defer a.Close()
	b := hub.Subscribe("u2")
	defer b.Close()

	n := NewPostgresNotifier(nil, hub, logging.Nop{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go n.Listen(ctx, "dsn")

	for _, sub := range []*Subscription{a, b} {
		select {
		case <-sub.C():
		case <-time.After(time.Second):
			t.Fatalf("no resync for %s", sub.userID)
		}
	}
}
