package models

// College groups programs. CollegeCode is the natural key.
type College struct {
	CollegeCode string `db:"college_code" json:"college_code" validate:"required"`
	CollegeName string `db:"college_name" json:"college_name" validate:"required"`
}

// NaturalKey implements Record.
func (c College) NaturalKey() string { return c.CollegeCode }
