// Package surreal connects to SurrealDB, the document-store driver for the
// catalog record store.
//
// Queries go through Select, which decodes the first statement's rows into a
// typed slice and surfaces statement-level failures as ErrQuery:
//
//	rows, err := surreal.Select[authorRecord](ctx, client, "SELECT * FROM author", nil)
package surreal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/surrealdb/surrealdb.go"
)

var (
	// ErrConnection indicates a failure to connect to or talk with SurrealDB.
	ErrConnection = errors.New("surrealdb connection error")

	// ErrQuery indicates a statement that SurrealDB rejected.
	ErrQuery = errors.New("surrealdb query error")
)

// Config holds SurrealDB connection settings.
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}

// Client wraps a signed-in SurrealDB connection scoped to one namespace/database.
type Client struct {
	db     *surrealdb.DB
	config Config
}

func New(cfg Config) *Client {
	return &Client{config: cfg}
}

// Connect opens the websocket, signs in and selects namespace and database.
func (c *Client) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", c.config.Host, c.config.Port)
	log.Info().Str("endpoint", endpoint).Msg("[SURREALDB] Connecting...")

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if _, err := db.SignIn(ctx, &surrealdb.Auth{
		Username: c.config.User,
		Password: c.config.Password,
	}); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %w", ErrConnection, err)
	}

	if err := db.Use(ctx, c.config.Namespace, c.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %w", ErrConnection, err)
	}

	c.db = db
	log.Info().Str("namespace", c.config.Namespace).Str("database", c.config.Database).Msg("[SURREALDB] Connected")
	return nil
}

func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close(context.Background())
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return ErrConnection
	}
	if _, err := c.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return nil
}

// Select runs query and decodes the rows of its first statement into T.
// A statement that returns no rows yields an empty slice, never an error.
func Select[T any](ctx context.Context, c *Client, query string, vars map[string]interface{}) ([]T, error) {
	if c == nil || c.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[[]T](ctx, c.db, query, vars)
	if err != nil {
		return nil, classify(err)
	}
	if results == nil || len(*results) == 0 {
		return []T{}, nil
	}

	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
	}

	rows := (*results)[0].Result
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// classify tags a failed query call. Errors SurrealDB answered with are
// ErrQuery; a dropped websocket, a network error or a deadline is
// ErrConnection.
func classify(err error) error {
	var (
		queryErr *surrealdb.QueryError
		rpcErr   *surrealdb.RPCError
		closeErr *websocket.CloseError
		netErr   net.Error
	)
	switch {
	case errors.As(err, &queryErr), errors.As(err, &rpcErr):
		return fmt.Errorf("%w: %w", ErrQuery, err)
	case errors.As(err, &closeErr),
		errors.As(err, &netErr),
		errors.Is(err, websocket.ErrCloseSent),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrConnection, err)
	default:
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
}

// Exec runs query for its side effects only.
func Exec(ctx context.Context, c *Client, query string, vars map[string]interface{}) error {
	_, err := Select[map[string]interface{}](ctx, c, query, vars)
	return err
}
