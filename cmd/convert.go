package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jparise/unitconv/internal/history"
	"github.com/jparise/unitconv/internal/timeconv"
	"github.com/jparise/unitconv/internal/units"
	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <group> <expression>...",
		Short: "Convert a quantity within a unit group",
		Long: `Convert a quantity within a unit group.

For the time group the expression may be a unit conversion, a clock, month,
or date range, a single clock, month, or date, or a sum of durations. All
other groups take "<from> <to> <amount>".`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd.Context(), strings.ToLower(args[0]), args[1:])
		},
	}
}

func (a *app) convert(ctx context.Context, group string, args []string) error {
	store, err := a.loadStore(ctx)
	if err != nil {
		return err
	}
	if !store.HasGroup(group) {
		return fmt.Errorf("%w: %q (available: %s)", units.ErrUnknownGroup, group, strings.Join(store.Groups(), ", "))
	}

	var entry history.Entry
	if group == units.TimeGroup {
		res, err := timeconv.Convert(timeconv.Request{
			Expression: strings.Join(args, " "),
			Units:      store.Tables,
			Months:     store.Months,
			Year:       time.Now().Year(),
		})
		if err != nil {
			return err
		}
		a.log.Debug("time conversion", "shape", res.Shape.String(), "value", res.Value)
		entry = history.Entry{
			Group:      group,
			Message:    res.Message,
			FromTime:   res.From,
			ToTime:     res.To,
			FactorTime: res.Factor,
			Result:     res.Value,
		}
	} else {
		if len(args) != 3 {
			return fmt.Errorf("%q conversions take <from> <to> <amount>, got %d arguments", group, len(args))
		}
		conv, err := store.Convert(group, strings.ToLower(args[0]), strings.ToLower(args[1]), args[2])
		if err != nil {
			return err
		}
		entry = history.Entry{
			Group:    group,
			Message:  conv.Message,
			FromType: conv.From,
			ToType:   conv.To,
			Amount:   &conv.Amount,
			Result:   conv.Value,
		}
	}

	a.out.Result(entry.Message)

	if err := history.Open(store.Dir()).Append(ctx, entry); err != nil {
		a.out.Warningf("conversion not recorded in history: %v", err)
	}
	return nil
}
