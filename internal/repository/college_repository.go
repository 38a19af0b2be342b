package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/query"
)

// CollegeTable lists colleges by code or name.
var CollegeTable = TableDefinition[models.College]{
	Table:    "colleges",
	Key:      "college_code",
	Columns:  []string{"college_code", "college_name"},
	Writable: []string{"college_code", "college_name"},
	Values: func(c *models.College) []interface{} {
		return []interface{}{c.CollegeCode, c.CollegeName}
	},
	List: query.Table{
		From:    "colleges",
		Columns: []string{"college_code", "college_name"},
		Key:     "college_code",
		Search:  []query.Field{query.Text("college_code"), query.Text("college_name")},
		Fields: map[string]query.Field{
			"code":         query.Text("college_code"),
			"college code": query.Text("college_code"),
			"name":         query.Text("college_name"),
			"college name": query.Text("college_name"),
		},
		Sorts: map[string]string{
			"code":         "college_code",
			"college code": "college_code",
			"name":         "college_name",
			"college name": "college_name",
		},
	},
}

// NewCollegeRepository constructs the college repository.
func NewCollegeRepository(db *sqlx.DB, metrics queryObserver) *TableRepository[models.College] {
	return NewTableRepository(db, CollegeTable, metrics)
}
