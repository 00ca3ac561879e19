package models

import (
	"strings"

	dErrors "coursecred/pkg/domain-errors"
)

// ResourceType tags the kind of learning resource a credential is issued for.
type ResourceType string

const (
	ResourceTypeCourse       ResourceType = "course"
	ResourceTypeLearningPath ResourceType = "learning_path"
)

// ParseResourceType rejects anything outside the supported set.
func ParseResourceType(value string) (ResourceType, error) {
	switch ResourceType(strings.TrimSpace(value)) {
	case ResourceTypeCourse:
		return ResourceTypeCourse, nil
	case ResourceTypeLearningPath:
		return ResourceTypeLearningPath, nil
	case "":
		return ResourceTypeCourse, nil
	default:
		return "", dErrors.New(dErrors.CodeConfiguration, "unsupported resource type: "+value)
	}
}

// Resource is a course or learning path that credentials are issued for.
type Resource struct {
	ID   string
	Type ResourceType
}

// String renders the resource as its natural key.
func (r Resource) String() string {
	return string(r.Type) + ":" + r.ID
}
