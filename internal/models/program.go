package models

// Program is a degree program offered by a college.
type Program struct {
	ProgramCode string `db:"program_code" json:"program_code" validate:"required"`
	ProgramName string `db:"program_name" json:"program_name" validate:"required"`
	CollegeCode string `db:"college_code" json:"college_code" validate:"required"`
}

// NaturalKey implements Record.
func (p Program) NaturalKey() string { return p.ProgramCode }
