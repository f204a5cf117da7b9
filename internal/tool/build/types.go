package build

import "github.com/Cyclone1070/devrelay/internal/config"

// RunTestsRequest represents the parameters for a run-tests operation.
type RunTestsRequest struct {
	Dir string `json:"dir"`
}

func (r *RunTestsRequest) Validate(cfg *config.Config) error {
	if r.Dir == "" {
		r.Dir = cfg.Actions.DefaultDir
	}
	return nil
}

// RunTestsResponse carries the build exit status and the tail of its output.
type RunTestsResponse struct {
	ReturnCode int    `json:"returncode"`
	Tail       string `json:"tail"`
}

// RunCoverageRequest represents the parameters for a run-coverage operation.
type RunCoverageRequest struct {
	Dir string `json:"dir"`
}

func (r *RunCoverageRequest) Validate(cfg *config.Config) error {
	if r.Dir == "" {
		r.Dir = cfg.Actions.DefaultDir
	}
	return nil
}

// RunCoverageResponse carries the build exit status, the expected report
// location and the tail of the build output.
type RunCoverageResponse struct {
	ReturnCode int    `json:"returncode"`
	Report     string `json:"report"`
	Log        string `json:"log"`
}
