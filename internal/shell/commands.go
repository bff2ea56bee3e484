package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/core/scheduler"
)

func (sh *Shell) ls(_ context.Context, args []string) error {
	filter, err := scheduler.ParseFilter(args...)
	if err != nil {
		return err
	}
	flights := sh.b.Flights(filter)
	if len(flights) == 0 {
		fmt.Fprintln(sh.out, "No matching flights found.")
		return nil
	}
	sh.page(sh.flightTable(flights), len(flights))
	return nil
}

func (sh *Shell) delay(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("delay")
	}
	minutes, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid minutes %q", args[1])
	}
	out, err := sh.b.Delay(ctx, args[0], model.Minute(minutes))
	if err != nil {
		return err
	}
	sh.printOutcome(out)
	return nil
}

func (sh *Shell) curfew(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return usage("curfew")
	}
	start, end, rest, err := parseWindow(args[1:])
	if err != nil || len(rest) != 0 {
		return usage("curfew")
	}
	out, err := sh.b.Curfew(ctx, args[0], start, end)
	if err != nil {
		return err
	}
	sh.printOutcome(out)
	return nil
}

func (sh *Shell) maintenance(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return usage("maintenance")
	}
	start, end, rest, err := parseWindow(args[1:])
	if err != nil || len(rest) > 1 {
		return usage("maintenance")
	}
	var location string
	if len(rest) == 1 {
		location = rest[0]
	}
	out, err := sh.b.Maintenance(ctx, args[0], start, end, location)
	if err != nil {
		return err
	}
	sh.printOutcome(out)
	return nil
}

func (sh *Shell) explain(_ context.Context, args []string) error {
	rep, ok := sh.b.LastReport()
	if !ok {
		fmt.Fprintln(sh.out, "No report to explain")
		return nil
	}
	full := len(args) > 0 && strings.EqualFold(args[0], "full")
	sh.printExplain(rep, full)
	return nil
}

func (sh *Shell) recover(ctx context.Context, _ []string) error {
	out, err := sh.b.Recover(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Recovery cycle complete: %d reassigned, %d still unscheduled.\n", out.Reassigned, out.StillUnscheduled)
	for _, a := range out.Assignments {
		fmt.Fprintf(sh.out, "  %s -> %s\n", a.FlightID, a.Aircraft)
	}
	return nil
}

func (sh *Shell) stats(context.Context, []string) error {
	sh.printStats(sh.b.Stats())
	return nil
}

func (sh *Shell) aircraft(context.Context, []string) error {
	views := sh.b.Aircraft()
	sh.page(sh.aircraftTable(views), len(views))
	return nil
}

func (sh *Shell) help(context.Context, []string) error {
	fmt.Fprintln(sh.out, "\nAvailable Commands:")
	for _, c := range commands {
		fmt.Fprintf(sh.out, "  %-45s - %s\n", c.usage, c.help)
	}
	fmt.Fprintln(sh.out, "\nTimes are minutes (450) or day and clock (DAY1 07:30).")
	return nil
}

// parseWindow reads two times from args. A time is either one token ("450")
// or two ("DAY1 07:30").
func parseWindow(args []string) (start, end model.Minute, rest []string, err error) {
	start, args, err = takeMinute(args)
	if err != nil {
		return 0, 0, nil, err
	}
	end, args, err = takeMinute(args)
	if err != nil {
		return 0, 0, nil, err
	}
	return start, end, args, nil
}

func takeMinute(args []string) (model.Minute, []string, error) {
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("missing time")
	}
	if strings.HasPrefix(strings.ToUpper(args[0]), "DAY") && len(args) > 1 && strings.Contains(args[1], ":") {
		m, err := model.ParseMinute(args[0] + " " + args[1])
		return m, args[2:], err
	}
	m, err := model.ParseMinute(args[0])
	return m, args[1:], err
}
