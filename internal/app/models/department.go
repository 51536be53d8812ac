package models

// Department owns courses and students.
type Department struct {
	ID          int64   `json:"id" db:"id" example:"1"`
	Name        string  `json:"name" db:"name" example:"Information Technology"` // Unique, case-insensitive
	Description *string `json:"description,omitempty" db:"description"`          // Nullable
}
