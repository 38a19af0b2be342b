package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/query"
)

// ProgramTable lists programs; the "college" filter narrows to one college.
var ProgramTable = TableDefinition[models.Program]{
	Table:    "programs",
	Key:      "program_code",
	Columns:  []string{"program_code", "program_name", "college_code"},
	Writable: []string{"program_code", "program_name", "college_code"},
	Values: func(p *models.Program) []interface{} {
		return []interface{}{p.ProgramCode, p.ProgramName, p.CollegeCode}
	},
	List: query.Table{
		From:    "programs p",
		Columns: []string{"p.program_code", "p.program_name", "p.college_code"},
		Key:     "p.program_code",
		Search: []query.Field{
			query.Text("p.program_code"),
			query.Text("p.program_name"),
			query.Text("p.college_code"),
		},
		Fields: map[string]query.Field{
			"code":         query.Text("p.program_code"),
			"program code": query.Text("p.program_code"),
			"name":         query.Text("p.program_name"),
			"program name": query.Text("p.program_name"),
			"college":      query.Text("p.college_code"),
			"college code": query.Text("p.college_code"),
		},
		Sorts: map[string]string{
			"code":         "p.program_code",
			"program code": "p.program_code",
			"name":         "p.program_name",
			"program name": "p.program_name",
			"college":      "p.college_code",
			"college code": "p.college_code",
		},
		Filters: map[string]query.Field{
			"college": query.Text("p.college_code"),
		},
	},
}

// NewProgramRepository constructs the program repository.
func NewProgramRepository(db *sqlx.DB, metrics queryObserver) *TableRepository[models.Program] {
	return NewTableRepository(db, ProgramTable, metrics)
}
