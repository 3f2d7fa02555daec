package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/render"
)

func newCatCommand(opts *rootOptions) *cobra.Command {
	catCmd := &cobra.Command{
		Use:     "cat",
		Aliases: []string{"category"},
		Short:   "Manage categories",
	}
	catCmd.AddCommand(newCatAddCommand(opts))
	catCmd.AddCommand(newCatEditCommand(opts))
	catCmd.AddCommand(newCatRmCommand(opts))
	catCmd.AddCommand(newCatListCommand(opts))
	return catCmd
}

func newCatAddCommand(opts *rootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := ledger.ParseKind(kind)
			if err != nil {
				return err
			}
			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				c, err := s.AddCategory(args[0], k)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added category %d %q (%s)\n", c.ID, c.Name, c.Kind)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "expense", "expense or income")

	return cmd
}

func newCatEditCommand(opts *rootOptions) *cobra.Command {
	var name, kind string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a category or change its kind",
		Long: `Rename a category or change its kind.

Existing transactions keep the amount sign they were recorded with.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				cur, ok := s.Category(catID)
				if !ok {
					return fmt.Errorf("category %d: %w", catID, ledger.ErrNotFound)
				}
				if cmd.Flags().Changed("name") {
					cur.Name = name
				}
				if cmd.Flags().Changed("kind") {
					k, err := ledger.ParseKind(kind)
					if err != nil {
						return err
					}
					cur.Kind = k
				}
				c, err := s.EditCategory(catID, cur.Name, cur.Kind)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated category %d %q (%s)\n", c.ID, c.Name, c.Kind)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&kind, "kind", "", "new kind: expense or income")

	return cmd
}

func newCatRmCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an unused category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				c, ok := s.Category(catID)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "No category %d\n", catID)
					return nil
				}
				if !yes {
					ok, err := confirm(cmd, fmt.Sprintf("Delete category %q?", c.Name))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
						return nil
					}
				}
				if _, err := s.DeleteCategory(catID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %d\n", catID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func newCatListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				return render.Categories(cmd.OutOrStdout(), s.Categories())
			})
		},
	}
}
