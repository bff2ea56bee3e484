package shell

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/core/scheduler"
)

// pageThreshold is the number of rows above which listings go through the pager.
const pageThreshold = 20

type palette struct {
	good, warn, bad, head *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		good: color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		bad:  color.New(color.FgRed),
		head: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.good, p.warn, p.bad, p.head} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (sh *Shell) status(s model.Status) string {
	switch st := s.(type) {
	case model.Scheduled:
		return sh.pal.good.Sprint("Scheduled")
	case model.Delayed:
		return sh.pal.warn.Sprint("Delayed")
	case model.Unscheduled:
		return sh.pal.bad.Sprintf("Unscheduled (%s)", st.Reason.Title())
	default:
		return "?"
	}
}

// flightTable renders flights with the status last so color codes do not
// disturb column alignment.
func (sh *Shell) flightTable(flights []scheduler.FlightView) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFROM\tTO\tDEPARTURE\tARRIVAL\tDELAY\tAIRCRAFT\tSTATUS")
	for _, f := range flights {
		ac := f.Aircraft
		if ac == "" {
			ac = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			f.ID, f.Origin, f.Destination, f.ActualDeparture, f.ActualArrival, f.Delay, ac, sh.status(f.State()))
	}
	_ = tw.Flush()
	return buf.String()
}

func (sh *Shell) aircraftTable(views []scheduler.AircraftView) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLOCATION\tTAIL\tREADY\tLEGS\tROTATION")
	for _, v := range views {
		rot := strings.Join(v.Rotation, " -> ")
		if rot == "" {
			rot = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", v.ID, v.Location, v.Tail.Location, v.Tail.Ready, len(v.Rotation), rot)
	}
	_ = tw.Flush()
	return buf.String()
}

// page writes content, through the pager when the output is a terminal and
// the listing is long. Pager failures fall back to plain output.
func (sh *Shell) page(content string, rows int) {
	if !sh.tty || rows <= pageThreshold {
		fmt.Fprint(sh.out, content)
		return
	}
	args := strings.Fields(sh.pager)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = sh.out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprint(sh.out, content)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func firstBreak(rep scheduler.Report) string {
	if rep.FirstBreak == nil {
		return "None"
	}
	return fmt.Sprintf("%s (%s)", rep.FirstBreak.FlightID, rep.FirstBreak.Reason.Title())
}

func (sh *Shell) printOutcome(out scheduler.Outcome) {
	rep := out.Report
	fmt.Fprintf(sh.out, "\n%s\n\nImpact:\n", sh.pal.head.Sprint(rep.Trigger))
	if rep.Kind == scheduler.KindDelay {
		fmt.Fprintf(sh.out, "  Delayed: %d flight%s\n", out.Delayed, plural(out.Delayed))
	}
	fmt.Fprintf(sh.out, "  Unscheduled: %d flight%s\n\nFirst break:\n  %s\n\n", out.Unscheduled, plural(out.Unscheduled), firstBreak(rep))
}

func (sh *Shell) printExplain(rep scheduler.Report, full bool) {
	fmt.Fprintf(sh.out, "\nExplain (last disruption)\n\nTrigger:\n  %s\n", rep.Trigger)
	if !full {
		fmt.Fprint(sh.out, "\nImpact:\n")
		if rep.Kind == scheduler.KindDelay {
			fmt.Fprintf(sh.out, "  Delayed: %d flight%s\n", len(rep.Affected), plural(len(rep.Affected)))
		}
		fmt.Fprintf(sh.out, "  Unscheduled: %d flight%s\n\nFirst break:\n  %s\n\n",
			len(rep.Unscheduled), plural(len(rep.Unscheduled)), firstBreak(rep))
		return
	}
	if rep.Kind == scheduler.KindDelay {
		if len(rep.Affected) == 0 {
			fmt.Fprint(sh.out, "\nDelayed flights:\n  None\n")
		} else {
			fmt.Fprintf(sh.out, "\nDelayed flights (%d):\n", len(rep.Affected))
			for _, id := range rep.Affected {
				fmt.Fprintf(sh.out, "  %s\n", id)
			}
		}
	}
	if len(rep.Unscheduled) == 0 {
		fmt.Fprint(sh.out, "\nUnscheduled:\n  None\n\n")
		return
	}
	fmt.Fprintf(sh.out, "\nUnscheduled flights (%d):\n", len(rep.Unscheduled))
	for _, rm := range rep.Unscheduled {
		fmt.Fprintf(sh.out, "  %s on %s (%s)\n", rm.FlightID, rm.Aircraft, rm.Reason.Title())
	}
	fmt.Fprintln(sh.out)
}

var reasonLabels = map[model.Reason]string{
	model.ReasonWaiting:             "Waiting",
	model.ReasonMaxDelayExceeded:    "Max Delay Exceeded",
	model.ReasonAirportCurfew:       "Airport Curfew",
	model.ReasonAircraftMaintenance: "Aircraft Maintenance",
	model.ReasonBrokenChain:         "Broken Chain",
}

func (sh *Shell) printStats(st scheduler.StatsSnapshot) {
	row := func(label string, n int) {
		fmt.Fprintf(sh.out, "%-36s%d (%.1f%%)\n", label+":", n, st.Share(n))
	}
	fmt.Fprintln(sh.out, "\nFleet Utilization Summary:")
	fmt.Fprintln(sh.out, "---------------------------")
	row("Scheduled", st.Scheduled)
	row("Delayed", st.Delayed)
	for _, r := range model.Reasons() {
		row(fmt.Sprintf("Unscheduled (%s)", reasonLabels[r]), st.ByReason[r])
	}
	fmt.Fprintln(sh.out, "---------------------------")
	if st.Delayed > 0 {
		fmt.Fprintf(sh.out, "Delay mean / stddev:                %.1f / %.1f min\n", st.MeanDelay, st.StdDevDelay)
	}
	fmt.Fprintf(sh.out, "Total Flights: %d\n\n", st.Total)
}
