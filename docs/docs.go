// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/departments": {
            "get": {"tags": ["departments"], "summary": "Get all departments", "parameters": [{"$ref": "#/parameters/page"}, {"$ref": "#/parameters/size"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}},
            "post": {"tags": ["departments"], "summary": "Create a new department", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.DepartmentRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}, "422": {"description": "Rule violated", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/departments/{id}": {
            "get": {"tags": ["departments"], "summary": "Get department by ID", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}},
            "put": {"tags": ["departments"], "summary": "Update a department", "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.DepartmentRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}},
            "delete": {"tags": ["departments"], "summary": "Delete a department", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}, "409": {"description": "Has students or courses", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/courses": {
            "get": {"tags": ["courses"], "summary": "Get all courses", "parameters": [{"$ref": "#/parameters/page"}, {"$ref": "#/parameters/size"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}},
            "post": {"tags": ["courses"], "summary": "Create a new course", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CourseRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}}, "422": {"description": "Rule violated", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/courses/{id}": {
            "get": {"tags": ["courses"], "summary": "Get course by ID", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}},
            "put": {"tags": ["courses"], "summary": "Update a course", "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CourseRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}},
            "delete": {"tags": ["courses"], "summary": "Delete a course", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}}
        },
        "/students": {
            "get": {"tags": ["students"], "summary": "Get all students", "parameters": [{"$ref": "#/parameters/page"}, {"$ref": "#/parameters/size"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}},
            "post": {"tags": ["students"], "summary": "Create a new student", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.StudentRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}}, "422": {"description": "Rule violated", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/students/{id}": {
            "get": {"tags": ["students"], "summary": "Get student by ID", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}},
            "put": {"tags": ["students"], "summary": "Update a student", "parameters": [{"$ref": "#/parameters/id"}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.StudentRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}},
            "delete": {"tags": ["students"], "summary": "Delete a student", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}}
        },
        "/enrollments": {
            "get": {"tags": ["enrollments"], "summary": "Get enrollments", "parameters": [{"in": "query", "name": "studentId", "type": "integer"}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/size"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}},
            "post": {"tags": ["enrollments"], "summary": "Enroll a student", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.EnrollRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}}, "409": {"description": "Already enrolled", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}, "422": {"description": "Rule violated", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/enrollments/{studentId}/{courseId}/grade": {
            "post": {"tags": ["enrollments"], "summary": "Assign a grade", "parameters": [{"$ref": "#/parameters/studentId"}, {"$ref": "#/parameters/courseId"}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.GradeRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}, "422": {"description": "Rule violated", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}},
            "put": {"tags": ["enrollments"], "summary": "Update a grade", "parameters": [{"$ref": "#/parameters/studentId"}, {"$ref": "#/parameters/courseId"}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.GradeRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}, "422": {"description": "Rule violated", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/enrollments/{studentId}/{courseId}/finalize": {
            "post": {"tags": ["enrollments"], "summary": "Finalize a grade", "parameters": [{"$ref": "#/parameters/studentId"}, {"$ref": "#/parameters/courseId"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}, "422": {"description": "Grade not assigned", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        }
    },
    "parameters": {
        "id": {"in": "path", "name": "id", "required": true, "type": "integer"},
        "studentId": {"in": "path", "name": "studentId", "required": true, "type": "integer"},
        "courseId": {"in": "path", "name": "courseId", "required": true, "type": "integer"},
        "page": {"in": "query", "name": "page", "type": "integer"},
        "size": {"in": "query", "name": "size", "type": "integer"}
    },
    "definitions": {
        "dto.APIResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "data": {}, "timestamp": {"type": "string"}}},
        "dto.ErrorDetail": {"type": "object", "properties": {"code": {"type": "string", "example": "STUDENT_UNDERAGE"}, "message": {"type": "string"}, "field": {"type": "string"}, "severity": {"type": "string"}, "details": {}}},
        "dto.ErrorResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "error": {"$ref": "#/definitions/dto.ErrorDetail"}, "timestamp": {"type": "string"}}},
        "dto.DepartmentRequest": {"type": "object", "properties": {"name": {"type": "string", "example": "Information Technology"}, "description": {"type": "string"}}},
        "dto.CourseRequest": {"type": "object", "properties": {"code": {"type": "string", "example": "CS101"}, "title": {"type": "string"}, "credits": {"type": "integer", "example": 3}, "departmentId": {"type": "integer"}, "isActive": {"type": "boolean"}, "isArchived": {"type": "boolean"}}},
        "dto.StudentRequest": {"type": "object", "properties": {"code": {"type": "string", "example": "S001"}, "fullName": {"type": "string"}, "email": {"type": "string"}, "departmentId": {"type": "integer"}, "dateOfBirth": {"type": "string", "example": "2000-01-15"}, "isActive": {"type": "boolean"}}},
        "dto.EnrollRequest": {"type": "object", "required": ["studentId", "courseId"], "properties": {"studentId": {"type": "integer"}, "courseId": {"type": "integer"}, "enrollDate": {"type": "string", "example": "2026-03-10"}}},
        "dto.GradeRequest": {"type": "object", "required": ["grade"], "properties": {"grade": {"type": "number", "example": 8.5}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Course Manager API",
	Description:      "Departments, courses, students, enrollments and grading.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
