package marks

import "github.com/JaimeStill/gradebook/pkg/openapi"

type spec struct {
	Subjects *openapi.Operation
	Student  *openapi.Operation
	Latest   *openapi.Operation
	Export   *openapi.Operation
}

// Spec documents the marks endpoints.
var Spec = spec{
	Subjects: &openapi.Operation{
		Summary: "List subjects",
		Tags:    []string{"Marks"},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Distinct subjects sorted case-insensitively",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}},
				},
			},
		},
	},
	Student: &openapi.Operation{
		Summary:    "Get a student's marks",
		Tags:       []string{"Marks"},
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Student ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Every stored mark for the student", "Student"),
		},
	},
	Latest: &openapi.Operation{
		Summary: "Get the latest mark in one subject",
		Tags:    []string{"Marks"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Student ID"),
			openapi.QueryParam("subject", "string", "Subject name, exact match", true),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Most recently saved mark", "Entry"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Export: &openapi.Operation{
		Summary:    "Export a student's marks",
		Tags:       []string{"Marks"},
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Student ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("XLSX workbook", xlsxContentType),
		},
	},
}

// Schemas returns the component schemas referenced by Spec.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Entry": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"subject": {Type: "string", Example: "Data Structures"},
				"mark":    {Type: "number", Example: 87},
			},
		},
		"Record": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"student_id":   {Type: "string", Example: "101"},
				"student_name": {Type: "string"},
				"subject":      {Type: "string"},
				"mark":         {Type: "number"},
				"source_file":  {Type: "string"},
			},
		},
		"Student": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"student_id":   {Type: "string"},
				"student_name": {Type: "string"},
				"marks":        {Type: "array", Items: openapi.SchemaRef("Entry")},
			},
		},
	}
}
