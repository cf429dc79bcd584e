package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/kgtools/foundation/internal/colors"
	"github.com/kgtools/foundation/internal/command"
	"github.com/kgtools/foundation/internal/prelude"
	"github.com/kgtools/foundation/internal/tabular"
	"github.com/kgtools/foundation/internal/timehelper"
)

var monthParams = []command.Param{
	{Name: "month", Type: command.String, Optional: true,
		Extra: command.Extra{Help: "YYYY-MM, default the current month"}},
}

func (t *Tools) month(_ context.Context, args *command.Args) error {
	m := timehelper.DateOf(t.now().In(timehelper.NYC))
	if s := args.String("month"); s != "" {
		var err error
		if m, err = timehelper.ParseMonth(s); err != nil {
			return err
		}
	}

	colors.Print(t.Out, fmt.Sprintf("%s: Q%d, %s",
		timehelper.ToMonthStr(m),
		timehelper.MonthToQuarter(m.Month()),
		prelude.Pluralize(timehelper.DaysInMonth(m), "day"),
	))

	tbl := tabular.New()
	if err := tbl.Header("DATE", "DAY", "WEEK OF"); err != nil {
		return err
	}
	for d := range timehelper.RangeDaysOfMonth(m) {
		var color func(string) string
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			color = colors.Gray
		}
		week := timehelper.StartOfWeek(d).Format(time.DateOnly)
		if err := tbl.RowColor(color, d.Format(time.DateOnly), d.Weekday().String()[:3], week); err != nil {
			return err
		}
	}
	return tbl.Flush(t.Out, tabular.DefaultSpacing, nil)
}

var agoParams = []command.Param{
	{Name: "epoch", Type: command.Float, Extra: command.Extra{Help: "Seconds since the Unix epoch"}},
	{Name: "utc", Kind: command.KeywordOnly, Type: command.Bool, Extra: command.Extra{Help: "Show the time in UTC"}},
}

func (t *Tools) ago(_ context.Context, args *command.Args) error {
	secs := args.Float("epoch")
	when := timehelper.FromEpochSecs(secs)
	if args.Bool("utc") {
		when = timehelper.FromEpochSecsUTC(secs)
	}
	elapsed := t.now().Sub(when)
	return colors.Print(t.Out,
		when.Format("2006-01-02 15:04:05 MST"),
		colors.Cyan(timehelper.Ago(when)),
		colors.Gray("("+timehelper.HumanDuration(elapsed.Abs())+")"),
	)
}
