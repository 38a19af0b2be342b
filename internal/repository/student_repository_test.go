package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/query"
)

var studentColumns = []string{"student_id", "first_name", "last_name", "year_level", "gender", "program_code", "image_url"}

func TestStudentRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	where := "FROM students s LEFT JOIN programs p ON p.program_code = s.program_code WHERE p.college_code = $1 AND s.gender = $2 AND CAST(s.year_level AS TEXT) = $3"
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) " + where)).
		WithArgs("CCS", "Female", "2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(where + " ORDER BY s.student_id ASC LIMIT 10 OFFSET 0")).
		WithArgs("CCS", "Female", "2").
		WillReturnRows(sqlmock.NewRows(studentColumns).AddRow("2021-0001", "Ada", "Lovelace", 2, "Female", "BSCS", nil))

	rows, total, err := repo.List(context.Background(), query.Params{
		Page:    1,
		Limit:   10,
		SortBy:  "ID",
		Filters: map[string]string{"college": "CCS", "gender": "Female", "year": "2", "program": ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].ImageURL)
	assert.Equal(t, 2, rows[0].YearLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListSortDescending(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students s")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.last_name DESC, s.student_id DESC LIMIT 20 OFFSET 20")).
		WillReturnRows(sqlmock.NewRows(studentColumns))

	_, _, err := repo.List(context.Background(), query.Params{Page: 2, Limit: 20, SortBy: "Last Name", SortDesc: true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySearchAndSortByFullName(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	where := "WHERE CONCAT(s.first_name, ' ', s.last_name) ILIKE $1"
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students s LEFT JOIN programs p ON p.program_code = s.program_code " + where)).
		WithArgs("%ada%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(where + " ORDER BY CONCAT(s.first_name, ' ', s.last_name) ASC, s.student_id ASC LIMIT 10 OFFSET 0")).
		WithArgs("%ada%").
		WillReturnRows(sqlmock.NewRows(studentColumns).AddRow("2021-0001", "Ada", "Lovelace", 2, "Female", "BSCS", nil))

	rows, _, err := repo.List(context.Background(), query.Params{
		Page:     1,
		Limit:    10,
		FilterBy: "Student Name",
		SortBy:   "Student Name",
		Search:   "ada",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentTableNameLabelsAgree(t *testing.T) {
	list := StudentTable.List
	for _, label := range []string{"name", "student name"} {
		assert.Equal(t, list.Fields[label].Column, list.SortColumn(label), label)
	}
}

func TestStudentRepositoryCreateOmitsImage(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students (student_id,first_name,last_name,year_level,gender,program_code) VALUES ($1,$2,$3,$4,$5,$6)")).
		WithArgs("2021-0001", "Ada", "Lovelace", 2, "Female", "BSCS").
		WillReturnRows(sqlmock.NewRows(studentColumns).AddRow("2021-0001", "Ada", "Lovelace", 2, "Female", "BSCS", nil))

	url := "https://cdn.example/ada.png"
	created, err := repo.Create(context.Background(), &models.Student{
		StudentID: "2021-0001", FirstName: "Ada", LastName: "Lovelace", YearLevel: 2, Gender: "Female", ProgramCode: "BSCS", ImageURL: &url,
	})
	require.NoError(t, err)
	assert.Nil(t, created.ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateImage(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	url := "https://cdn.example/ada.png"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE students SET image_url = $1 WHERE student_id = $2")).
		WithArgs(url, "2021-0001").
		WillReturnRows(sqlmock.NewRows(studentColumns).AddRow("2021-0001", "Ada", "Lovelace", 2, "Female", "BSCS", url))

	student, err := repo.UpdateImage(context.Background(), "2021-0001", &url)
	require.NoError(t, err)
	require.NotNil(t, student.ImageURL)
	assert.Equal(t, url, *student.ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}
