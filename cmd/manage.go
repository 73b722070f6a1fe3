package cmd

import (
	"context"
	"strings"

	"github.com/jparise/unitconv/internal/units"
	"github.com/spf13/cobra"
)

// mutate applies fn to the unit tables and saves the result while holding
// the data directory lock.
func (a *app) mutate(ctx context.Context, fn func(*units.Tables) error) error {
	store, err := a.loadStore(ctx)
	if err != nil {
		return err
	}
	return store.Update(ctx, fn)
}

func lower(args []string) []string {
	out := make([]string, len(args))
	for i, s := range args {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

func newGroupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Add or remove unit groups",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <group> <base-unit>",
			Short: "Add a group with the given base unit",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				args = lower(args)
				err := a.mutate(cmd.Context(), func(t *units.Tables) error {
					return t.AddGroup(args[0], args[1])
				})
				if err != nil {
					return err
				}
				a.out.Successf("Added group %q with base unit %q", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <group>",
			Short: "Remove a group with all its units and aliases",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				args = lower(args)
				err := a.mutate(cmd.Context(), func(t *units.Tables) error {
					return t.RemoveGroup(args[0])
				})
				if err != nil {
					return err
				}
				a.out.Successf("Removed group %q", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newTypeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type",
		Short: "Add or remove units",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <group> <unit> <factor> [<offset>]",
			Short: "Add a unit to a group",
			Long: `Add a unit to a group.

<factor> is how many base units one new unit is worth. Temperature units may
also take an <offset>, so that base = value*factor + offset.`,
			Args: cobra.RangeArgs(3, 4),
			RunE: func(cmd *cobra.Command, args []string) error {
				group, unit := strings.ToLower(args[0]), strings.ToLower(args[1])
				factor, err := parseFactor("factor", args[2])
				if err != nil {
					return err
				}
				rule := units.Unit{Factor: factor}
				if len(args) == 4 {
					if rule.Offset, err = parseFactor("offset", args[3]); err != nil {
						return err
					}
				}
				err = a.mutate(cmd.Context(), func(t *units.Tables) error {
					return t.AddType(group, unit, rule)
				})
				if err != nil {
					return err
				}
				a.out.Successf("Added %q to %q", unit, group)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <group> <unit>",
			Short: "Remove a unit and its aliases from a group",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				args = lower(args)
				err := a.mutate(cmd.Context(), func(t *units.Tables) error {
					return t.RemoveType(args[0], args[1])
				})
				if err != nil {
					return err
				}
				a.out.Successf("Removed %q from %q", args[1], args[0])
				return nil
			},
		},
	)
	return cmd
}

func newAliasCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Add or remove unit aliases",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <group> <unit> <alias>",
			Short: "Add an alias for a unit",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				args = lower(args)
				err := a.mutate(cmd.Context(), func(t *units.Tables) error {
					return t.AddAlias(args[0], args[1], args[2])
				})
				if err != nil {
					return err
				}
				a.out.Successf("Added alias %q for %q in %q", args[2], args[1], args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <group> <alias>",
			Short: "Remove an alias",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				args = lower(args)
				err := a.mutate(cmd.Context(), func(t *units.Tables) error {
					return t.RemoveAlias(args[0], args[1])
				})
				if err != nil {
					return err
				}
				a.out.Successf("Removed alias %q from %q", args[1], args[0])
				return nil
			},
		},
	)
	return cmd
}

func newBaseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "base <group> <unit>",
		Short: "Change the base unit of a group",
		Long: `Change the base unit of a group.

Every rule in the group is recomputed relative to the new base.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			args = lower(args)
			err := a.mutate(cmd.Context(), func(t *units.Tables) error {
				return t.ChangeBase(args[0], args[1])
			})
			if err != nil {
				return err
			}
			a.out.Successf("Base unit of %q is now %q", args[0], args[1])
			return nil
		},
	}
}
