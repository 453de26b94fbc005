package repository

import (
	"context"
	"errors"
	"net"
	"testing"

	"thinkpad-notes-be/internal/pkg/serverutils"

	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStoreErrorMapsConnectivityFailures(t *testing.T) {
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"dial failure", dialErr, serverutils.ErrServiceUnavailable},
		{"connect error", &pgconn.ConnectError{}, serverutils.ErrServiceUnavailable},
		{"deadline exceeded", context.DeadlineExceeded, serverutils.ErrServiceUnavailable},
		{"wrapped dial failure", pkgerrors.Wrap(dialErr, "query notes"), serverutils.ErrServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, storeError(tc.in), tc.want)
		})
	}
}

func TestStoreErrorPassesThroughQueryFailures(t *testing.T) {
	queryErr := errors.New(`relation "notes" does not exist`)
	assert.Equal(t, queryErr, storeError(queryErr))

	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value"}
	assert.Equal(t, error(pgErr), storeError(pgErr))
}
