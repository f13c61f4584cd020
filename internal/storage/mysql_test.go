package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*MySQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewMySQLStore(sqlx.NewDb(db, "mysql"), "emotion_state")
	require.NoError(t, err)
	return s, mock
}

func TestNewMySQLStore_InvalidTable(t *testing.T) {
	_, err := NewMySQLStore(nil, "state; DROP TABLE x")
	assert.Error(t, err)
}

func TestMySQLStore_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      string
		wantErrIs error
		wantErr   bool
	}{
		{
			name: "returns stored value",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM emotion_state WHERE name = \\?").
					WithArgs("emotionLog").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))
			},
			want: `[]`,
		},
		{
			name: "missing key",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM emotion_state WHERE name = \\?").
					WithArgs("emotionLog").
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
			},
			wantErr:   true,
			wantErrIs: ErrNotFound,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM emotion_state").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			tt.setupMock(mock)

			got, err := s.Get(context.Background(), "emotionLog")
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(got))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMySQLStore_PutAll(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string][]byte
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "upserts keys in name order with a multi-row insert",
			values: map[string][]byte{
				"emotionTags": []byte(`["a"]`),
				"emotionLog":  []byte(`[]`),
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO emotion_state \\(name, value\\) VALUES \\(\\?, \\?\\), \\(\\?, \\?\\) ON DUPLICATE KEY UPDATE value = VALUES\\(value\\)").
					WithArgs("emotionLog", []byte(`[]`), "emotionTags", []byte(`["a"]`)).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
		},
		{
			name:   "empty map does nothing",
			values: map[string][]byte{},
			setupMock: func(mock sqlmock.Sqlmock) {
				// No expectations
			},
		},
		{
			name:   "db error rolls back",
			values: map[string][]byte{"emotionLog": []byte(`[]`)},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO emotion_state").
					WillReturnError(fmt.Errorf("deadlock"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name:   "invalid key is rejected before the transaction",
			values: map[string][]byte{"../x": nil},
			setupMock: func(mock sqlmock.Sqlmock) {
				// No expectations
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			tt.setupMock(mock)

			err := s.PutAll(context.Background(), tt.values)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMySQLStore_EnsureSchema(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS emotion_state").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
