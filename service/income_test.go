package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incomeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "category_id", "amount", "source", "date", "created_at", "updated_at", "deleted_at"})
}

func TestIncomeService_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(4)).
		WillReturnRows(categoryRows().AddRow(4, 1, "Salary", "", time.Now(), time.Now(), nil))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `incomes`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(uint(9)).
		WillReturnRows(incomeRows().AddRow(9, 1, 4, 5000.0, "工资", date, time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(4)).
		WillReturnRows(categoryRows().AddRow(4, 1, "Salary", "", time.Now(), time.Now(), nil))

	income, err := NewIncomeService().Create(1, 5000, "工资", 4, date)
	require.NoError(t, err)
	assert.Equal(t, "工资", income.Source)
	require.NotNil(t, income.Category)
	assert.Equal(t, "Salary", income.Category.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncomeService_Create_EmptySource(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	_, err := NewIncomeService().Create(1, 5000, "   ", 4, time.Now())
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestIncomeService_Create_CategoryNotOwned(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(4)).
		WillReturnRows(categoryRows().AddRow(4, 2, "Salary", "", time.Now(), time.Now(), nil))

	_, err := NewIncomeService().Create(1, 5000, "工资", 4, time.Now())
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncomeService_Get_NotOwner(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(uint(9)).
		WillReturnRows(incomeRows().AddRow(9, 1, 4, 5000.0, "工资", time.Now(), time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(4)).
		WillReturnRows(categoryRows().AddRow(4, 1, "Salary", "", time.Now(), time.Now(), nil))

	_, err := NewIncomeService().Get(9, 2)
	require.Error(t, err)
	assert.Equal(t, KindNotOwner, KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncomeService_Update_Source(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(uint(9)).
		WillReturnRows(incomeRows().AddRow(9, 1, 4, 5000.0, "工资", time.Now(), time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(4)).
		WillReturnRows(categoryRows().AddRow(4, 1, "Salary", "", time.Now(), time.Now(), nil))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `incomes`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(uint(9)).
		WillReturnRows(incomeRows().AddRow(9, 1, 4, 5000.0, "奖金", time.Now(), time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(4)).
		WillReturnRows(categoryRows().AddRow(4, 1, "Salary", "", time.Now(), time.Now(), nil))

	src := "奖金"
	income, err := NewIncomeService().Update(9, 1, IncomeUpdates{Source: &src})
	require.NoError(t, err)
	assert.Equal(t, "奖金", income.Source)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncomeService_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(uint(404)).
		WillReturnRows(incomeRows())

	err := NewIncomeService().Delete(404, 1)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
