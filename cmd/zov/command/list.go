package command

import (
	"fmt"

	"github.com/meigma/zov"
)

const (
	ListDescription = "List the entries of an archive"
	ListHelp        = ListDescription
)

// List represents the `list` command of the zov cli tool.
type List struct {
	Args struct {
		Archive string `positional-arg-name:"archive" required:"true" description:"Archive file to read"`
	} `positional-args:"yes"`
}

// Execute prints the entry table, it honors the go-flags.Commander interface.
func (c *List) Execute(args []string) error {
	l, err := zov.List(c.Args.Archive)
	if err != nil {
		return err
	}
	if err := l.WriteTable(defaultOutput); err != nil {
		return err
	}
	if len(l.Failures) == 0 {
		return nil
	}

	for _, f := range l.Failures {
		fmt.Fprintf(defaultOutput, "  %s\n", f)
	}
	return fmt.Errorf("%w: %d unreadable entries", ErrCheckFailed, len(l.Failures))
}
