package scaffold

import (
	"regexp"
	"strings"

	"github.com/Cyclone1070/devrelay/internal/config"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ScaffoldTestRequest represents the parameters for a scaffold-test operation.
type ScaffoldTestRequest struct {
	ClassName  string `json:"class_name"`
	MethodName string `json:"method_name"`
	Dir        string `json:"dir"`
	Package    string `json:"package"`
}

func (r *ScaffoldTestRequest) Validate(cfg *config.Config) error {
	if r.ClassName == "" {
		return ErrClassNameRequired
	}
	if r.MethodName == "" {
		return ErrMethodNameRequired
	}
	if !identifierPattern.MatchString(r.ClassName) {
		return &InvalidIdentifierError{Field: "class_name", Value: r.ClassName}
	}
	if !identifierPattern.MatchString(r.MethodName) {
		return &InvalidIdentifierError{Field: "method_name", Value: r.MethodName}
	}

	if r.Dir == "" {
		r.Dir = cfg.Actions.DefaultDir
	}
	if r.Package == "" {
		r.Package = cfg.Scaffold.Package
	}
	for _, segment := range strings.Split(r.Package, ".") {
		if !identifierPattern.MatchString(segment) {
			return &InvalidIdentifierError{Field: "package", Value: r.Package}
		}
	}
	return nil
}

// ScaffoldTestResponse contains the path of the test file that now holds the skeleton.
type ScaffoldTestResponse struct {
	CreatedOrUpdated string `json:"created_or_updated"`
}
