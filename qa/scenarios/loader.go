package scenarios

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/tower/core/scenario"
)

// Expected is the schedule state a case must end in.
type Expected struct {
	Scheduled   int `yaml:"scheduled"`
	Delayed     int `yaml:"delayed"`
	Unscheduled int `yaml:"unscheduled"`
	// Reassigned is summed over every recover op of the case.
	Reassigned int `yaml:"reassigned"`
	// Statuses maps flight ids to their final status, e.g. "unscheduled:broken_chain".
	Statuses map[string]string `yaml:"statuses,omitempty"`
}

// Case is one QA scenario: a schedule, the operations applied to it and
// the expected outcome.
type Case struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Schedule    *scenario.File `yaml:"schedule"`
	Ops         []scenario.Op  `yaml:"ops"`
	Expected    Expected       `yaml:"expected"`
}

func Load(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c.Schedule == nil {
		return nil, errors.New("schedule is required")
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%s: name is required", path)
	}
	return &c, nil
}
