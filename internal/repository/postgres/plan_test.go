package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatana/gymdesk/internal/errs"
)

func TestPlanDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlanRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM plans WHERE plan_id = $1`)).
		WithArgs("GOLD").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "GOLD"))
}

func TestPlanDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlanRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM plans WHERE plan_id = $1`)).
		WithArgs("SILVER").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "SILVER")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPlanList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlanRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"plan_id", "plan_name", "duration_months", "price", "description", "created_at", "updated_at",
	}).
		AddRow("GOLD", "GOLD", 12, 999.99, "Annual", now, now).
		AddRow("SILVER", "SILVER", 6, 499.99, "Half year", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + planColumns + ` FROM plans`)).
		WillReturnRows(rows)

	plans, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "GOLD", plans[0].PlanID)
	assert.Equal(t, 6, plans[1].DurationMonths)
}
