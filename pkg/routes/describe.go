package routes

import (
	"github.com/JaimeStill/gradebook/pkg/openapi"
)

// Describe adds every route carrying an OpenAPI operation to spec.Paths.
// Paths are relative to the groups' mount point.
func Describe(spec *openapi.Spec, groups ...Group) error {
	for _, group := range groups {
		if err := describeGroup(spec, "", group); err != nil {
			return err
		}
	}
	return nil
}

func describeGroup(spec *openapi.Spec, parentPrefix string, group Group) error {
	prefix := parentPrefix + group.Prefix

	for _, route := range group.Routes {
		if route.OpenAPI == nil {
			continue
		}
		if err := spec.AddOperation(route.Method, prefix+route.Pattern, route.OpenAPI); err != nil {
			return err
		}
	}

	for _, child := range group.Children {
		if err := describeGroup(spec, prefix, child); err != nil {
			return err
		}
	}
	return nil
}
