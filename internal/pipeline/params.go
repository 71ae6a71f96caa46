package pipeline

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// InputSpec names one remote input: a URL plus an optional override for
// the staged file name.
type InputSpec struct {
	URL      string
	FileName string
}

// UnmarshalJSON accepts either a bare URL string or a two-element
// [url, file name] array.
func (s *InputSpec) UnmarshalJSON(data []byte) error {
	var u string
	if err := json.Unmarshal(data, &u); err == nil {
		s.URL = u
		s.FileName = ""
		return nil
	}

	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("input must be a URL string or a [url, file name] pair")
	}
	if len(pair) != 2 {
		return fmt.Errorf("input pair must have exactly two elements, got %d", len(pair))
	}
	s.URL = pair[0]
	s.FileName = pair[1]
	return nil
}

// Params describes one pipeline run: remote inputs to stage, the command
// to run against them, and the object-storage prefix for results.
type Params struct {
	Inputs  []InputSpec `json:"inputs"`
	Command string      `json:"command"`
	Output  string      `json:"output"`
}

// ParseParams decodes and validates a JSON-encoded parameter set.
func ParseParams(data []byte) (Params, error) {
	var p Params
	if err := json.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("decoding parameters: %w", err)
	}
	if p.Command == "" {
		return Params{}, fmt.Errorf("parameters must include a command")
	}
	if p.Output == "" {
		return Params{}, fmt.Errorf("parameters must include an output URL")
	}
	for _, in := range p.Inputs {
		if in.FileName == "" {
			continue
		}
		if in.FileName == "." || in.FileName == ".." || filepath.Base(in.FileName) != in.FileName {
			return Params{}, fmt.Errorf("file name %q must stay inside the working directory", in.FileName)
		}
	}
	return p, nil
}
