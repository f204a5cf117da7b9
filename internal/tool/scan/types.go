package scan

import (
	"encoding/json"

	"github.com/Cyclone1070/devrelay/internal/config"
)

// ScanSourcesRequest represents the parameters for a scan-sources operation.
type ScanSourcesRequest struct {
	Dir string `json:"dir"`
}

func (r *ScanSourcesRequest) Validate(cfg *config.Config) error {
	if r.Dir == "" {
		r.Dir = cfg.Actions.DefaultDir
	}
	return nil
}

// Entry is one method-like signature found by the scan. An entry with Error
// set carries nothing else.
type Entry struct {
	File   string
	Class  *string
	Method string
	Error  string
}

// MarshalJSON emits {file, class, method} with class null when no type
// declaration was found, or {error} for an error entry.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{e.Error})
	}
	return json.Marshal(struct {
		File   string  `json:"file"`
		Class  *string `json:"class"`
		Method string  `json:"method"`
	}{e.File, e.Class, e.Method})
}
