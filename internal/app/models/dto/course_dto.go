package dto

import "github.com/yigit/coursemanager/internal/app/models"

// CourseRequest represents course create and update data. Omitted flags keep
// their defaults: active and not archived.
type CourseRequest struct {
	Code         string `json:"code,omitempty" binding:"omitempty,code" example:"CS101"`
	Title        string `json:"title" binding:"max=200" example:"Programming"`
	Credits      *int   `json:"credits" example:"3"`
	DepartmentID *int64 `json:"departmentId" example:"1"`
	IsActive     *bool  `json:"isActive,omitempty" example:"true"`
	IsArchived   *bool  `json:"isArchived,omitempty" example:"false"`
}

// ToModel converts the request into a course with the given ID
func (r *CourseRequest) ToModel(id int64) *models.Course {
	course := models.NewCourse()
	course.ID = id
	course.Code = r.Code
	course.Title = r.Title
	course.Credits = r.Credits
	course.DepartmentID = r.DepartmentID
	if r.IsActive != nil {
		course.IsActive = *r.IsActive
	}
	if r.IsArchived != nil {
		course.IsArchived = *r.IsArchived
	}
	return course
}
