package sqlstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"daycare-log/internal/domain/events"
	"daycare-log/internal/domain/events/details"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

func fanOutItem(id, childID string) events.FanOutItem {
	e := events.Event{
		ID:        id,
		ChildID:   childID,
		StaffID:   "teacher-1",
		EventTime: at,
		Category:  events.CategoryDiaper,
		Details:   details.Diaper{Type: details.DiaperPoo},
		Audit:     events.Audit{CreatedAt: at, CreatedBy: "teacher-1", UpdatedAt: at, UpdatedBy: "teacher-1"},
	}
	return events.FanOutItem{Event: e, Summary: events.SummaryOf(e)}
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, Postgres), mock
}

var (
	updateChildSQL = regexp.QuoteMeta("UPDATE children")
	insertEventSQL = regexp.QuoteMeta("INSERT INTO events")
)

func TestCreateWithSummaries_CommitsOnce(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(updateChildSQL).
		WithArgs("A", sqlmock.AnyArg(), at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertEventSQL).
		WithArgs("e1", "A", "teacher-1", at, "diaper", `{"type":"poo"}`, at, "teacher-1", at, "teacher-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateChildSQL).
		WithArgs("B", sqlmock.AnyArg(), at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertEventSQL).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Events().CreateWithSummaries(context.Background(), []events.FanOutItem{
		fanOutItem("e1", "A"),
		fanOutItem("e2", "B"),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithSummaries_MissingChildRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(updateChildSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertEventSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateChildSQL).WithArgs("ghost", sqlmock.AnyArg(), at).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.Events().CreateWithSummaries(context.Background(), []events.FanOutItem{
		fanOutItem("e1", "A"),
		fanOutItem("e2", "ghost"),
	})
	require.ErrorIs(t, err, events.ErrChildNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithSummaries_InsertFailureRollsBack(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec(updateChildSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertEventSQL).WillReturnError(boom)
	mock.ExpectRollback()

	err := s.Events().CreateWithSummaries(context.Background(), []events.FanOutItem{fanOutItem("e1", "A")})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithSummaries_CommitFailure(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("serialization failure")

	mock.ExpectBegin()
	mock.ExpectExec(updateChildSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertEventSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(boom)

	err := s.Events().CreateWithSummaries(context.Background(), []events.FanOutItem{fanOutItem("e1", "A")})
	require.ErrorIs(t, err, boom)
}

func TestListByChild_BuildsFilteredQuery(t *testing.T) {
	s, mock := newMockStore(t)
	day := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	cols := []string{
		"id", "child_id", "staff_id", "event_time", "category", "details",
		"created_at", "created_by", "updated_at", "updated_by", "deleted_at", "deleted_by",
	}
	mock.ExpectQuery(regexp.QuoteMeta("AND event_time >= $2 AND event_time < $3 AND category IN ($4, $5) ORDER BY event_time DESC, created_at DESC LIMIT $6")).
		WithArgs("A",
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			"diaper", "food", 10).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("e1", "A", "teacher-1", at, "diaper", []byte(`{"type":"poo"}`), at, "teacher-1", at, "teacher-1", nil, nil))

	got, err := s.Events().ListByChild(context.Background(), "A", events.ListFilter{
		Day:        &day,
		Categories: []events.Category{events.CategoryDiaper, events.CategoryFood},
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, details.Diaper{Type: details.DiaperPoo}, got[0].Details)
	assert.False(t, got[0].Deleted())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE events")).
		WithArgs("e1", at, "admin-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Events().SoftDelete(context.Background(), "e1", "admin-1", at)
	assert.ErrorIs(t, err, events.ErrNotFound)
}

func TestSQLiteRebind(t *testing.T) {
	assert.Equal(t, "SELECT * FROM t WHERE a = ?1 AND b = ?12", SQLite.Rebind("SELECT * FROM t WHERE a = $1 AND b = $12"))
	assert.Equal(t, "q $1", Postgres.Rebind("q $1"))
}
