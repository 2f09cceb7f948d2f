package questions

import "github.com/JaimeStill/gradebook/pkg/openapi"

type spec struct {
	Ask *openapi.Operation
}

// Spec documents the question endpoint.
var Spec = spec{
	Ask: &openapi.Operation{
		Summary:     "Ask about marks",
		Description: "Classifies a free-text question as a request for all marks or for one subject and answers it.",
		Tags:        []string{"Questions"},
		RequestBody: openapi.RequestBodyJSON("Question", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Answer with a display message", "Answer"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

// Schemas returns the component schemas referenced by Spec.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Question": {
			Type:     "object",
			Required: []string{"student_id", "question"},
			Properties: map[string]*openapi.Schema{
				"student_id": {Type: "string", Example: "101"},
				"question":   {Type: "string", Example: "my mark in data structures"},
			},
		},
		"Answer": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"student_id":   {Type: "string"},
				"student_name": {Type: "string"},
				"intent":       {Type: "string", Enum: []any{"all_marks", "subject_mark", "unknown"}},
				"subject":      {Type: "string"},
				"mark":         {Type: "number"},
				"marks":        {Type: "array", Items: openapi.SchemaRef("Entry")},
				"subjects":     {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"message":      {Type: "string"},
			},
		},
	}
}
