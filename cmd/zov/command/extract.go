package command

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/meigma/zov"
)

const (
	ExtractDescription = "Extract an archive into a directory"
	ExtractHelp        = ExtractDescription + "\n\n" +
		"Damaged or oversized entries are reported and skipped; the command\n" +
		"exits with status 2 when not every entry was extracted."
)

// Extract represents the `extract` command of the zov cli tool.
type Extract struct {
	cmd
	Password     string `short:"p" long:"password" description:"Password for a protected archive"`
	MaxEntrySize uint64 `long:"max-entry-size" default:"104857600" description:"Largest entry to write, in bytes"`
	Keep         bool   `short:"k" long:"keep" description:"Keep existing files instead of overwriting them"`

	Args struct {
		Archive string `positional-arg-name:"archive" required:"true" description:"Archive file to read"`
		Dir     string `positional-arg-name:"dir" required:"true" description:"Destination directory"`
	} `positional-args:"yes"`
}

// Execute extracts the archive and prints a summary, it honors the
// go-flags.Commander interface.
func (c *Extract) Execute(args []string) error {
	opts := []zov.ExtractOption{
		zov.ExtractWithLogger(c.logger()),
		zov.ExtractWithMaxEntrySize(c.MaxEntrySize),
		zov.ExtractWithOverwrite(!c.Keep),
	}
	if c.Password != "" {
		opts = append(opts, zov.ExtractWithPassword(c.Password))
	}

	ctx, cancel := interruptible()
	defer cancel()

	stats, err := zov.Extract(ctx, c.Args.Archive, c.Args.Dir, opts...)
	if err != nil && !errors.Is(err, zov.ErrPartial) {
		return err
	}

	fmt.Fprintf(defaultOutput, "Extracted %d of %d files (%s) to %s\n",
		stats.Extracted, stats.Expected, humanize.Bytes(stats.Bytes), c.Args.Dir)
	if stats.Kept > 0 {
		fmt.Fprintf(defaultOutput, "Kept %d existing files\n", stats.Kept)
	}
	for _, f := range stats.Failures {
		fmt.Fprintf(defaultOutput, "  %s\n", f)
	}
	return err
}
