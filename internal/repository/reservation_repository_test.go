package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosaleda/pasteleria-api/internal/model"
)

func newReservationRepo(t *testing.T) (*ReservationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReservationRepo(db), mock
}

func TestReservationCreateCommitsHeaderAndDetail(t *testing.T) {
	repo, mock := newReservationRepo(t)
	deadline := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservations")).
		WithArgs(uint64(7), deadline).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservation_details")).
		WithArgs(uint64(42), uint64(5), uint32(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), 7, 5, 2, deadline)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationCreateRollsBackWhenDetailFails(t *testing.T) {
	// A failure between the two inserts must not leave an orphaned header.
	repo, mock := newReservationRepo(t)
	deadline := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservations")).
		WithArgs(uint64(7), deadline).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservation_details")).
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 7, 5, 2, deadline)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelForUserPending(t *testing.T) {
	repo, mock := newReservationRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM reservations")).
		WithArgs(uint64(42), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.StatusPending))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET status = ?")).
		WithArgs(model.StatusCanceled, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CancelForUser(context.Background(), 42, 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelForUserRejectsNonPending(t *testing.T) {
	for _, status := range []string{model.StatusInPreparation, model.StatusFinalized, model.StatusCanceled} {
		t.Run(status, func(t *testing.T) {
			repo, mock := newReservationRepo(t)
			mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM reservations")).
				WithArgs(uint64(42), uint64(7)).
				WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(status))

			err := repo.CancelForUser(context.Background(), 42, 7)
			assert.ErrorIs(t, err, ErrNotCancelable)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCancelForUserNotOwned(t *testing.T) {
	// A reservation that exists but belongs to someone else reads as
	// not found for the caller.
	repo, mock := newReservationRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM reservations")).
		WithArgs(uint64(42), uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	err := repo.CancelForUser(context.Background(), 42, 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestAdminUpdateSkipsTransitionGuard(t *testing.T) {
	// The admin entry point applies any status, including jumping a
	// pending reservation straight to finalizado.
	repo, mock := newReservationRepo(t)
	status := model.StatusFinalized

	mock.ExpectQuery(regexp.QuoteMeta("SELECT reservation_id FROM reservations")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"reservation_id"}).AddRow(42))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET status = ? WHERE reservation_id = ?")).
		WithArgs(status, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AdminUpdate(context.Background(), 42, &status, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdateStatusAndDeadline(t *testing.T) {
	repo, mock := newReservationRepo(t)
	status := model.StatusInPreparation
	deadline := time.Date(2026, 12, 24, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT reservation_id FROM reservations")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"reservation_id"}).AddRow(42))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET status = ?, deadline = ? WHERE reservation_id = ?")).
		WithArgs(status, deadline, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AdminUpdate(context.Background(), 42, &status, &deadline)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdateMissingReservation(t *testing.T) {
	repo, mock := newReservationRepo(t)
	status := model.StatusFinalized

	mock.ExpectQuery(regexp.QuoteMeta("SELECT reservation_id FROM reservations")).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"reservation_id"}))

	err := repo.AdminUpdate(context.Background(), 404, &status, nil)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func reservationRowColumns() []string {
	return []string{"reservation_id", "deadline", "status", "name", "amount", "price", "category"}
}

func TestListByUserAndStatusFlattensLineItems(t *testing.T) {
	// A reservation with three line items yields three output rows, each
	// carrying the duplicated header fields and the precomputed line price.
	repo, mock := newReservationRepo(t)
	deadline := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(reservationRowColumns()).
		AddRow(42, deadline, model.StatusPending, "Pastel", 2, 200.0, "Pasteles").
		AddRow(42, deadline, model.StatusPending, "Flan", 1, 35.5, "Postres").
		AddRow(42, deadline, model.StatusPending, "Rosca", 3, 120.0, "Pasteles")
	mock.ExpectQuery(regexp.QuoteMeta("JOIN reservation_details d")).
		WithArgs(uint64(7), model.StatusPending).
		WillReturnRows(rows)

	got, err := repo.ListByUserAndStatus(context.Background(), 7, model.StatusPending)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, row := range got {
		assert.Equal(t, uint64(42), row.ReservationID)
		assert.Equal(t, model.StatusPending, row.Status)
		assert.Equal(t, deadline, row.Deadline)
	}
	assert.Equal(t, "Pastel", got[0].ProductName)
	assert.Equal(t, 200.0, got[0].Price) // unit price 100 x amount 2
	assert.Equal(t, 35.5, got[1].Price)
}

func TestListActiveByUserExcludesTerminalStatuses(t *testing.T) {
	repo, mock := newReservationRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("r.status NOT IN (?, ?)")).
		WithArgs(uint64(7), model.StatusCanceled, model.StatusFinalized).
		WillReturnRows(sqlmock.NewRows(reservationRowColumns()))

	got, err := repo.ListActiveByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllIncludesOwnerAndOrdersByDeadline(t *testing.T) {
	repo, mock := newReservationRepo(t)
	later := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	cols := append(reservationRowColumns(), "user_name", "phone")
	rows := sqlmock.NewRows(cols).
		AddRow(43, later, model.StatusPending, "Pastel", 1, 100.0, "Pasteles", "Ana", "5551234").
		AddRow(42, earlier, model.StatusFinalized, "Flan", 2, 71.0, "Postres", "Luis", "5559876")
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY r.deadline DESC")).
		WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].User.Name)
	assert.Equal(t, "5551234", got[0].User.Phone)
	assert.True(t, got[0].Deadline.After(got[1].Deadline))
}
