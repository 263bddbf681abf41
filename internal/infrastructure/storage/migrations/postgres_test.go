package migrations

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	statements []string
	err        error
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.statements = append(r.statements, sql)
	return pgconn.CommandTag{}, r.err
}

func TestRunPostgresMigrations_AppliesEmbeddedFiles(t *testing.T) {
	db := &recordingExecer{}
	require.NoError(t, RunPostgresMigrations(context.Background(), db))

	require.NotEmpty(t, db.statements)
	assert.Contains(t, db.statements[0], "CREATE TABLE IF NOT EXISTS activity_log")
}

func TestRunPostgresMigrations_StopsOnError(t *testing.T) {
	db := &recordingExecer{err: errors.New("permission denied")}
	err := RunPostgresMigrations(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_activity_log.sql")
	assert.Len(t, db.statements, 1)
}
