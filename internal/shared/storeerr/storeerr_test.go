package storeerr

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/infrastructure/surreal"
)

// refusedConnectError dials a port nothing listens on.
func refusedConnectError(t *testing.T) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := pgconn.Connect(ctx, "postgres://catalog@127.0.0.1:1/catalog?sslmode=disable&connect_timeout=2")
	if conn != nil {
		_ = conn.Close(ctx)
	}
	require.Error(t, err)
	return err
}

func TestWrap_PostgresConnectError_Unavailable(t *testing.T) {
	err := Wrap("list book summaries", refusedConnectError(t))

	assert.ErrorIs(t, err, ErrUnavailable)
	var connErr *pgconn.ConnectError
	assert.ErrorAs(t, err, &connErr)
}

func TestWrap_SurrealConnectionError_Unavailable(t *testing.T) {
	err := Wrap("list authors", fmt.Errorf("%w: websocket: close 1006", surreal.ErrConnection))

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, surreal.ErrConnection)
}

func TestWrap_QueryError_NotUnavailable(t *testing.T) {
	cause := &pgconn.PgError{Severity: "ERROR", Code: "22001", Message: "value too long"}

	err := Wrap("update author", cause)

	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to update author: ERROR: value too long (SQLSTATE 22001)", err.Error())
}

func TestWrap_SurrealQueryError_NotUnavailable(t *testing.T) {
	err := Wrap("create book", fmt.Errorf("%w: parse error", surreal.ErrQuery))

	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestIsUnavailable_Nil(t *testing.T) {
	assert.False(t, IsUnavailable(nil))
	assert.False(t, IsUnavailable(errors.New("boom")))
}
