package uploads

import (
	"maps"

	"github.com/JaimeStill/gradebook/pkg/openapi"
)

type spec struct {
	List    *openapi.Operation
	Search  *openapi.Operation
	Find    *openapi.Operation
	Upload  *openapi.Operation
	Preview *openapi.Operation
	Confirm *openapi.Operation
	Delete  *openapi.Operation
}

var (
	uploadID = openapi.UUIDParam("id", "Upload ID")

	staffOnly = map[int]*openapi.Response{
		401: openapi.ResponseRef("Unauthorized"),
	}
)

func responses(extra map[int]*openapi.Response) map[int]*openapi.Response {
	out := maps.Clone(staffOnly)
	maps.Copy(out, extra)
	return out
}

// Spec documents the staff upload endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary: "List uploads",
		Tags:    []string{"Uploads"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Filename search", false),
			openapi.QueryParam("sort", "string", "Sort fields", false),
			openapi.QueryParam("status", "string", "pending or confirmed", false),
			openapi.QueryParam("filename", "string", "Filename contains", false),
		},
		Responses: responses(map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of uploads", "UploadPage"),
		}),
	},
	Search: &openapi.Operation{
		Summary:     "Search uploads",
		Tags:        []string{"Uploads"},
		RequestBody: openapi.RequestBodyJSON("UploadSearch", true),
		Responses: responses(map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of uploads", "UploadPage"),
			400: openapi.ResponseRef("BadRequest"),
		}),
	},
	Find: &openapi.Operation{
		Summary:    "Get an upload",
		Tags:       []string{"Uploads"},
		Parameters: []*openapi.Parameter{uploadID},
		Responses: responses(map[int]*openapi.Response{
			200: openapi.ResponseJSON("Upload", "Upload"),
			404: openapi.ResponseRef("NotFound"),
		}),
	},
	Upload: &openapi.Operation{
		Summary:     "Upload a marks PDF",
		Description: "Stores the PDF and returns the extracted rows. Nothing is saved as marks until the upload is confirmed.",
		Tags:        []string{"Uploads"},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type:     "object",
						Required: []string{"file"},
						Properties: map[string]*openapi.Schema{
							"file": {Type: "string", Format: "binary"},
						},
					},
				},
			},
		},
		Responses: responses(map[int]*openapi.Response{
			201: openapi.ResponseJSON("Extraction preview", "Preview"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("TooLarge"),
		}),
	},
	Preview: &openapi.Operation{
		Summary:    "Preview an upload",
		Tags:       []string{"Uploads"},
		Parameters: []*openapi.Parameter{uploadID},
		Responses: responses(map[int]*openapi.Response{
			200: openapi.ResponseJSON("Extraction preview", "Preview"),
			404: openapi.ResponseRef("NotFound"),
		}),
	},
	Confirm: &openapi.Operation{
		Summary:    "Save an upload's rows as marks",
		Tags:       []string{"Uploads"},
		Parameters: []*openapi.Parameter{uploadID},
		Responses: responses(map[int]*openapi.Response{
			200: openapi.ResponseJSON("Saved rows", "ConfirmResult"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
			422: openapi.ResponseRef("Unprocessable"),
		}),
	},
	Delete: &openapi.Operation{
		Summary:    "Delete an upload",
		Tags:       []string{"Uploads"},
		Parameters: []*openapi.Parameter{uploadID},
		Responses: responses(map[int]*openapi.Response{
			204: {Description: "Upload deleted; saved marks are kept"},
			404: openapi.ResponseRef("NotFound"),
		}),
	},
}

// Schemas returns the component schemas referenced by Spec.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Upload": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"filename":     {Type: "string"},
				"content_type": {Type: "string"},
				"size_bytes":   {Type: "integer"},
				"page_count":   {Type: "integer"},
				"storage_key":  {Type: "string"},
				"status":       {Type: "string", Enum: []any{StatusPending, StatusConfirmed}},
				"row_count":    {Type: "integer"},
				"warnings":     {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"saved_count":  {Type: "integer"},
				"uploaded_at":  {Type: "string", Format: "date-time"},
				"confirmed_at": {Type: "string", Format: "date-time"},
			},
		},
		"UploadPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Upload")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
				"has_more":    {Type: "boolean"},
			},
		},
		"UploadSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      {Type: "integer"},
				"page_size": {Type: "integer"},
				"search":    {Type: "string"},
				"sort":      {Type: "string"},
				"status":    {Type: "string"},
				"filename":  {Type: "string"},
			},
		},
		"Preview": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"upload":   openapi.SchemaRef("Upload"),
				"rows":     {Type: "array", Items: openapi.SchemaRef("Record")},
				"warnings": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"mapping":  {Type: "object", Description: "Required column to header index"},
			},
		},
		"ConfirmResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"upload": openapi.SchemaRef("Upload"),
				"saved":  {Type: "integer"},
			},
		},
	}
}
