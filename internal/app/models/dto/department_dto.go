package dto

import "github.com/yigit/coursemanager/internal/app/models"

// DepartmentRequest represents department create and update data. Name rules
// are enforced by the department service so the response carries the rule
// message.
type DepartmentRequest struct {
	Name        string  `json:"name" binding:"max=100" example:"Information Technology"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500" example:"Software and systems"`
}

// ToModel converts the request into a department with the given ID
func (r *DepartmentRequest) ToModel(id int64) *models.Department {
	return &models.Department{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
	}
}
