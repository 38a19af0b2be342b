package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/query"
)

const studentName = "CONCAT(s.first_name, ' ', s.last_name)"

// StudentTable lists students joined to their program so they can be filtered by college.
var StudentTable = TableDefinition[models.Student]{
	Table:    "students",
	Key:      "student_id",
	Columns:  []string{"student_id", "first_name", "last_name", "year_level", "gender", "program_code", "image_url"},
	Writable: []string{"student_id", "first_name", "last_name", "year_level", "gender", "program_code"},
	Values: func(s *models.Student) []interface{} {
		return []interface{}{s.StudentID, s.FirstName, s.LastName, s.YearLevel, s.Gender, s.ProgramCode}
	},
	List: query.Table{
		From:    "students s LEFT JOIN programs p ON p.program_code = s.program_code",
		Columns: []string{"s.student_id", "s.first_name", "s.last_name", "s.year_level", "s.gender", "s.program_code", "s.image_url"},
		Key:     "s.student_id",
		Search: []query.Field{
			query.Text("s.student_id"),
			query.Text("s.first_name"),
			query.Text("s.last_name"),
			query.Text(studentName),
			query.Cast("s.year_level"),
			query.Text("s.gender"),
			query.Text("s.program_code"),
			query.Text("p.college_code"),
		},
		Fields: map[string]query.Field{
			"id":           query.Text("s.student_id"),
			"student id":   query.Text("s.student_id"),
			"first name":   query.Text("s.first_name"),
			"last name":    query.Text("s.last_name"),
			"name":         query.Text(studentName),
			"student name": query.Text(studentName),
			"year":         query.Cast("s.year_level"),
			"year level":   query.Cast("s.year_level"),
			"gender":       query.Text("s.gender"),
			"program":      query.Text("s.program_code"),
			"program code": query.Text("s.program_code"),
			"college":      query.Text("p.college_code"),
			"college code": query.Text("p.college_code"),
		},
		Sorts: map[string]string{
			"id":           "s.student_id",
			"student id":   "s.student_id",
			"first name":   "s.first_name",
			"last name":    "s.last_name",
			"name":         studentName,
			"student name": studentName,
			"year":         "s.year_level",
			"year level":   "s.year_level",
			"gender":       "s.gender",
			"program":      "s.program_code",
			"program code": "s.program_code",
			"college":      "p.college_code",
		},
		Filters: map[string]query.Field{
			"program": query.Text("s.program_code"),
			"year":    query.Cast("s.year_level"),
			"gender":  query.Text("s.gender"),
			"college": query.Text("p.college_code"),
		},
	},
}

// StudentRepository adds image handling to the student table.
type StudentRepository struct {
	*TableRepository[models.Student]
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB, metrics queryObserver) *StudentRepository {
	return &StudentRepository{TableRepository: NewTableRepository(db, StudentTable, metrics)}
}

// UpdateImage sets image_url, or clears it when url is nil.
func (r *StudentRepository) UpdateImage(ctx context.Context, studentID string, url *string) (*models.Student, error) {
	const statement = `UPDATE students SET image_url = $1 WHERE student_id = $2
        RETURNING student_id, first_name, last_name, year_level, gender, program_code, image_url`

	defer r.observe("update_image", time.Now())

	var student models.Student
	if err := r.db.GetContext(ctx, &student, statement, url, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("update student image: %w", err)
	}
	return &student, nil
}
