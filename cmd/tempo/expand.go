package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/civil"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	"github.com/aevon-lab/project-tempo/internal/core/interval"
	"github.com/aevon-lab/project-tempo/internal/core/recurrence"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/spf13/cobra"
)

const startLayout = "2006-01-02T15:04"

type expandOptions struct {
	start          string
	duration       time.Duration
	zone           string
	from, to       string
	maxOccurrences int
	asJSON         bool

	rule     v1.RecurrenceRuleRequest
	count    int
	until    string
	hasCount bool
}

func newExpandCmd() *cobra.Command {
	var opts expandOptions

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Print the occurrences of an ad-hoc schedule",
		Example: `  tempo expand --start 2025-01-06T09:00 --duration 1h --zone Europe/Berlin \
    --freq WEEKLY --byweekday MO,WE,FR --from 2025-01-01 --to 2025-01-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasCount = cmd.Flags().Changed("count")
			return runExpand(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.start, "start", "", "Anchor start, local wall-clock time (YYYY-MM-DDTHH:MM)")
	f.DurationVar(&opts.duration, "duration", time.Hour, "Occurrence length")
	f.StringVar(&opts.zone, "zone", "UTC", "IANA time zone of the anchor")
	f.StringVar(&opts.from, "from", "", "First local date to list (YYYY-MM-DD)")
	f.StringVar(&opts.to, "to", "", "Last local date to list (YYYY-MM-DD)")
	f.IntVar(&opts.maxOccurrences, "max-occurrences", 10000, "Abort when the window holds more occurrences")
	f.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of text")

	f.StringVar(&opts.rule.Frequency, "freq", "", "DAILY, WEEKLY or MONTHLY; empty for a single occurrence")
	f.IntVar(&opts.rule.Interval, "interval", 1, "Repeat every N periods")
	f.StringSliceVar(&opts.rule.ByWeekday, "byweekday", nil, "Weekdays (MO,TU,...)")
	f.IntSliceVar(&opts.rule.ByMonthDay, "bymonthday", nil, "Days of month, negative counts from the end")
	f.IntSliceVar(&opts.rule.BySetPos, "bysetpos", nil, "Positions within the monthly set")
	f.StringVar(&opts.until, "until", "", "Last local date of the series (YYYY-MM-DD)")
	f.IntVar(&opts.count, "count", 0, "Total number of occurrences")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runExpand(w io.Writer, opts expandOptions) error {
	loc, err := timeutil.LoadLocation(opts.zone)
	if err != nil {
		return err
	}
	start, err := time.ParseInLocation(startLayout, opts.start, loc)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	from, err := civil.ParseDate(opts.from)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := civil.ParseDate(opts.to)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}
	dr := timeutil.DateRange{From: from, To: to}
	if err := dr.Validate(); err != nil {
		return err
	}

	var req *v1.RecurrenceRuleRequest
	if opts.rule.Frequency != "" {
		rule := opts.rule
		if opts.until != "" {
			until, err := civil.ParseDate(opts.until)
			if err != nil {
				return fmt.Errorf("invalid --until: %w", err)
			}
			rule.Until = &until
		}
		if opts.hasCount {
			count := opts.count
			rule.Count = &count
		}
		req = &rule
	}

	sched, err := v1.NewSchedule(v1.NewAnchor(start, opts.duration, loc), req.Rule())
	if err != nil {
		return err
	}

	rec := &v1.Availability{ID: "adhoc", Timezone: opts.zone, Rules: sched}
	m := recurrence.NewMaterializer(recurrence.NewExpander(opts.maxOccurrences))
	occ, err := m.Materialize(rec, dr.In(loc))
	if err != nil {
		return err
	}
	interval.Sort(occ)

	if opts.asJSON {
		if occ == nil {
			occ = []interval.Interval{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(occ)
	}

	for _, iv := range occ {
		fmt.Fprintf(w, "%s  %s  %s\n",
			iv.Start.In(loc).Format("Mon"),
			iv.Start.In(loc).Format(time.RFC3339),
			iv.End.In(loc).Format(time.RFC3339))
	}
	fmt.Fprintf(w, "%d occurrence(s)\n", len(occ))
	return nil
}
