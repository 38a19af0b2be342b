package models

// Student is a learner enrolled in a program. StudentID is the natural key.
type Student struct {
	StudentID   string  `db:"student_id" json:"student_id" validate:"required"`
	FirstName   string  `db:"first_name" json:"first_name" validate:"required"`
	LastName    string  `db:"last_name" json:"last_name" validate:"required"`
	YearLevel   int     `db:"year_level" json:"year_level" validate:"required,min=1"`
	Gender      string  `db:"gender" json:"gender" validate:"required"`
	ProgramCode string  `db:"program_code" json:"program_code" validate:"required"`
	ImageURL    *string `db:"image_url" json:"image_url"`
}

// NaturalKey implements Record.
func (s Student) NaturalKey() string { return s.StudentID }

// StudentImageRequest sets or clears a student's image.
type StudentImageRequest struct {
	ImageURL *string `json:"image_url"`
}
