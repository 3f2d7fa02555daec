package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// confirm asks a yes/no question on the command's input. Anything but
// "y" or "yes" is a no.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func parseID(arg string) (int64, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return n, nil
}

// resolveCategory accepts a category id or a case-insensitive name.
// Numeric ids are passed through so the store decides how to label them.
func resolveCategory(s *ledger.Store, value string) (int64, error) {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, nil
	}
	name := strings.TrimSpace(value)
	for _, c := range s.Categories() {
		if strings.EqualFold(c.Name, name) {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("no category named %q", value)
}

func describe(t model.Transaction, s *ledger.Store) string {
	return fmt.Sprintf("%d %s %q %s %s [%s]", t.ID, t.Date.Format(ledger.DateFormat), t.Description,
		t.Amount.StringFixed(2), t.Currency, s.CategoryLabel(t))
}
