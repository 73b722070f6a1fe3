package cmd

import (
	"errors"
	"strings"

	"github.com/jparise/unitconv/internal/history"
	"github.com/spf13/cobra"
)

func newGroupsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List unit groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			return a.out.Groups(store.Tables)
		},
	}
}

func newTypesCmd(a *app) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "types <group>",
		Short: "List the units of a group",
		Long: `List the units of a group with their conversion rules and aliases.

--match filters units with a glob pattern that is tested against the unit
name and each of its aliases:
  *              Match any characters (e.g., "kilo*")
  ?              Match single character (e.g., "?m")
  [...]          Match character class (e.g., "[mk]m")
  {...}          Match alternatives (e.g., "{feet,inches}")`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			types, err := store.Types(strings.ToLower(args[0]), match)
			if err != nil {
				return err
			}
			if len(types) == 0 {
				a.out.Warningf("no units in %q match %q", args[0], match)
				return nil
			}
			return a.out.Types(types)
		},
	}
	cmd.Flags().StringVarP(&match, "match", "m", "",
		"only list units whose name or alias matches this glob")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversions",
		Long: `Show recent conversions, newest first.

Conversions are kept for three days.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := history.Open(a.dataDir).Recent(limit)
			if errors.Is(err, history.ErrEmpty) {
				a.out.Warningf("%v", err)
				return nil
			}
			if err != nil {
				return err
			}
			return a.out.History(entries)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit,
		"number of conversions to show")
	return cmd
}
