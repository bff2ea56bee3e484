package scenario

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/core/scheduler"
)

// Op is one scripted operation of a replay file.
type Op struct {
	Op       string       `json:"op" yaml:"op"`
	Flight   string       `json:"flight,omitempty" yaml:"flight,omitempty"`
	Minutes  model.Minute `json:"minutes,omitempty" yaml:"minutes,omitempty"`
	Airport  string       `json:"airport,omitempty" yaml:"airport,omitempty"`
	Aircraft string       `json:"aircraft,omitempty" yaml:"aircraft,omitempty"`
	Start    model.Minute `json:"start,omitempty" yaml:"start,omitempty"`
	End      model.Minute `json:"end,omitempty" yaml:"end,omitempty"`
	Location string       `json:"location,omitempty" yaml:"location,omitempty"`
}

func (o Op) String() string {
	switch o.Op {
	case "delay":
		return fmt.Sprintf("delay %s %d", o.Flight, o.Minutes)
	case "curfew":
		return fmt.Sprintf("curfew %s %d %d", o.Airport, o.Start, o.End)
	case "maintenance":
		s := fmt.Sprintf("maintenance %s %d %d", o.Aircraft, o.Start, o.End)
		if o.Location != "" {
			s += " " + o.Location
		}
		return s
	default:
		return o.Op
	}
}

// Target receives scripted operations.
type Target interface {
	Delay(ctx context.Context, flightID string, minutes model.Minute) (scheduler.Outcome, error)
	Curfew(ctx context.Context, airportID string, start, end model.Minute) (scheduler.Outcome, error)
	Maintenance(ctx context.Context, aircraftID string, start, end model.Minute, location string) (scheduler.Outcome, error)
	Recover(ctx context.Context) (scheduler.RecoveryOutcome, error)
}

// Result is the outcome of one applied operation.
type Result struct {
	Op       Op
	Outcome  *scheduler.Outcome
	Recovery *scheduler.RecoveryOutcome
}

// Apply runs the operation against t.
func (o Op) Apply(ctx context.Context, t Target) (Result, error) {
	res := Result{Op: o}
	var (
		out scheduler.Outcome
		err error
	)
	switch o.Op {
	case "delay":
		out, err = t.Delay(ctx, o.Flight, o.Minutes)
	case "curfew":
		out, err = t.Curfew(ctx, o.Airport, o.Start, o.End)
	case "maintenance":
		out, err = t.Maintenance(ctx, o.Aircraft, o.Start, o.End, o.Location)
	case "recover":
		rec, err := t.Recover(ctx)
		if err != nil {
			return res, err
		}
		res.Recovery = &rec
		return res, nil
	default:
		return res, fmt.Errorf("unknown op %q", o.Op)
	}
	if err != nil {
		return res, fmt.Errorf("%s: %w", o, err)
	}
	res.Outcome = &out
	return res, nil
}

// Script is an ordered list of operations.
type Script struct {
	Ops []Op `json:"ops" yaml:"ops"`
}

// LoadScript reads a YAML replay script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Run applies every operation in order and stops at the first error.
func (sc *Script) Run(ctx context.Context, t Target) ([]Result, error) {
	results := make([]Result, 0, len(sc.Ops))
	for _, op := range sc.Ops {
		res, err := op.Apply(ctx, t)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Direct adapts a bare schedule to Target.
func Direct(s *scheduler.Schedule) Target { return direct{s} }

type direct struct{ s *scheduler.Schedule }

func (d direct) Delay(_ context.Context, id string, m model.Minute) (scheduler.Outcome, error) {
	return d.s.Delay(id, m)
}

func (d direct) Curfew(_ context.Context, id string, start, end model.Minute) (scheduler.Outcome, error) {
	return d.s.Curfew(id, start, end)
}

func (d direct) Maintenance(_ context.Context, id string, start, end model.Minute, loc string) (scheduler.Outcome, error) {
	return d.s.Maintenance(id, start, end, loc)
}

func (d direct) Recover(context.Context) (scheduler.RecoveryOutcome, error) {
	return d.s.Recover(), nil
}
