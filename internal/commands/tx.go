package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/render"
	"github.com/tallybook/tally/internal/statement"
)

func newTxCommand(opts *rootOptions) *cobra.Command {
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Record, edit and list transactions",
	}
	txCmd.AddCommand(newTxAddCommand(opts))
	txCmd.AddCommand(newTxEditCommand(opts))
	txCmd.AddCommand(newTxRmCommand(opts))
	txCmd.AddCommand(newTxListCommand(opts))
	txCmd.AddCommand(newTxExportCommand(opts))
	txCmd.AddCommand(newTxImportCommand(opts))
	return txCmd
}

// txFlags are the fields shared by tx add and tx edit.
type txFlags struct {
	date        string
	description string
	amount      string
	currency    string
	category    string
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.description, "desc", "", "description")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount; the sign comes from the category")
	cmd.Flags().StringVar(&f.currency, "currency", "BRL", "currency: BRL or EUR")
	cmd.Flags().StringVar(&f.category, "category", "", "category id or name")
}

func newTxAddCommand(opts *rootOptions) *cobra.Command {
	var f txFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				in, err := f.input(s)
				if err != nil {
					return err
				}
				t, err := s.AddTransaction(in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", describe(t, s))
				return nil
			})
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func (f *txFlags) input(s *ledger.Store) (ledger.TransactionInput, error) {
	date := time.Now()
	if f.date != "" {
		d, err := ledger.ParseDate(f.date)
		if err != nil {
			return ledger.TransactionInput{}, err
		}
		date = d
	}
	amount, err := ledger.ParseAmount(f.amount)
	if err != nil {
		return ledger.TransactionInput{}, err
	}
	cur, err := ledger.ParseCurrency(f.currency)
	if err != nil {
		return ledger.TransactionInput{}, err
	}
	catID, err := resolveCategory(s, f.category)
	if err != nil {
		return ledger.TransactionInput{}, err
	}
	return ledger.TransactionInput{
		Date:        date,
		Description: f.description,
		Amount:      amount,
		Currency:    cur,
		CategoryID:  catID,
	}, nil
}

func newTxEditCommand(opts *rootOptions) *cobra.Command {
	var f txFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				edit, err := f.edit(cmd, s)
				if err != nil {
					return err
				}
				t, err := s.EditTransaction(txID, edit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", describe(t, s))
				return nil
			})
		},
	}

	f.register(cmd)

	return cmd
}

// edit keeps only the flags the user actually passed.
func (f *txFlags) edit(cmd *cobra.Command, s *ledger.Store) (ledger.TransactionEdit, error) {
	var edit ledger.TransactionEdit
	changed := cmd.Flags().Changed

	if changed("date") {
		d, err := ledger.ParseDate(f.date)
		if err != nil {
			return edit, err
		}
		edit.Date = &d
	}
	if changed("desc") {
		edit.Description = &f.description
	}
	if changed("amount") {
		a, err := ledger.ParseAmount(f.amount)
		if err != nil {
			return edit, err
		}
		edit.Amount = &a
	}
	if changed("currency") {
		c, err := ledger.ParseCurrency(f.currency)
		if err != nil {
			return edit, err
		}
		edit.Currency = &c
	}
	if changed("category") {
		catID, err := resolveCategory(s, f.category)
		if err != nil {
			return edit, err
		}
		edit.CategoryID = &catID
	}
	return edit, nil
}

func newTxRmCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				t, ok := s.Transaction(txID)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "No transaction %d\n", txID)
					return nil
				}
				if !yes {
					ok, err := confirm(cmd, fmt.Sprintf("Delete %s?", describe(t, s)))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
						return nil
					}
				}
				if _, err := s.DeleteTransaction(txID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %d\n", txID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// filterFlags select a statement.
type filterFlags struct {
	currency string
	expenses bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.currency, "currency", "", "only this currency (BRL or EUR)")
	cmd.Flags().BoolVar(&f.expenses, "expenses", false, "only expenses")
}

func (f *filterFlags) filter() (ledger.Filter, error) {
	out := ledger.Filter{ExpensesOnly: f.expenses}
	if f.currency != "" {
		c, err := ledger.ParseCurrency(f.currency)
		if err != nil {
			return out, err
		}
		out.Currency = c
	}
	return out, nil
}

func newTxListCommand(opts *rootOptions) *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a statement, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := f.filter()
			if err != nil {
				return err
			}
			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				empty := "No transactions."
				if filter.ExpensesOnly {
					empty = "No expenses."
				}
				return render.Statement(cmd.OutOrStdout(), s.ListTransactions(filter), s, empty)
			})
		},
	}

	f.register(cmd)

	return cmd
}

func newTxExportCommand(opts *rootOptions) *cobra.Command {
	var f filterFlags
	var outPath, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a statement as CSV or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := f.filter()
			if err != nil {
				return err
			}
			if format != "csv" && format != "pdf" {
				return fmt.Errorf("unknown format %q (want csv or pdf)", format)
			}
			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				var w io.Writer = cmd.OutOrStdout()
				if outPath != "" {
					file, err := os.Create(outPath)
					if err != nil {
						return fmt.Errorf("creating %s: %w", outPath, err)
					}
					defer file.Close()
					w = file
				}

				var n int
				if format == "pdf" {
					n, err = statement.ExportPDF(w, s, filter, statementTitle(filter))
				} else {
					n, err = statement.Export(w, s, filter)
				}
				if err != nil {
					return err
				}
				if outPath != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", n, outPath)
				}
				return nil
			})
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or pdf")

	return cmd
}

func statementTitle(f ledger.Filter) string {
	title := "Statement"
	if f.ExpensesOnly {
		title = "Expense statement"
	}
	if f.Currency != "" {
		title += " (" + string(f.Currency) + ")"
	}
	return title
}

func newTxImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Add the transactions of a statement CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer file.Close()

			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				n, err := statement.Import(file, s)
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions\n", n)
				return err
			})
		},
	}
}
