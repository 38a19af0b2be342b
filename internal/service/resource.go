package service

import "fmt"

// Resource names a resource in client-facing messages and response envelopes.
type Resource struct {
	// Name is the singular display name, e.g. "Student".
	Name string
	// Key is the property holding the row in mutation responses, e.g. "student".
	Key string
	// KeyLabel and KeyNoun phrase natural key conflicts: "<KeyLabel> already exists. Please use a different <KeyNoun>."
	KeyLabel string
	KeyNoun  string
	// Reference is the display name of the resource this one points at, if any.
	Reference string
}

var (
	StudentResource = Resource{Name: "Student", Key: "student", KeyLabel: "Student ID", KeyNoun: "ID", Reference: "Program"}
	ProgramResource = Resource{Name: "Program", Key: "program", KeyLabel: "Program Code", KeyNoun: "Code", Reference: "College"}
	CollegeResource = Resource{Name: "College", Key: "college", KeyLabel: "College Code", KeyNoun: "Code"}
)

func (r Resource) NotFoundMessage() string { return r.Name + " not found" }

func (r Resource) ConflictMessage() string {
	return fmt.Sprintf("%s already exists. Please use a different %s.", r.KeyLabel, r.KeyNoun)
}

func (r Resource) CreatedMessage() string { return r.Name + " created successfully" }
func (r Resource) UpdatedMessage() string { return r.Name + " updated successfully" }
func (r Resource) DeletedMessage() string { return r.Name + " deleted successfully" }

// MissingReferenceMessage is reported when a row points at a record that does not exist.
func (r Resource) MissingReferenceMessage() string {
	if r.Reference == "" {
		return "Referenced record does not exist"
	}
	return r.Reference + " does not exist"
}

// InUseMessage is reported when a delete is blocked by rows that still point at it.
func (r Resource) InUseMessage() string { return r.Name + " is still referenced" }
