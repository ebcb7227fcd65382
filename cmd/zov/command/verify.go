package command

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/meigma/zov"
)

const (
	VerifyDescription = "Check that every entry of an archive is readable"
	VerifyHelp        = VerifyDescription + "\n\n" +
		"Stored offsets that disagree with the computed layout are reported\n" +
		"but do not fail the check. With --decode every compressed payload is\n" +
		"also decoded."
)

// Verify represents the `verify` command of the zov cli tool.
type Verify struct {
	cmd
	Decode bool `short:"d" long:"decode" description:"Also decode compressed payloads"`

	Args struct {
		Archive string `positional-arg-name:"archive" required:"true" description:"Archive file to check"`
	} `positional-args:"yes"`
}

// Execute runs the check and prints the report, it honors the
// go-flags.Commander interface.
func (c *Verify) Execute(args []string) error {
	rep, err := zov.Verify(c.Args.Archive,
		zov.VerifyWithDecode(c.Decode),
		zov.VerifyWithLogger(c.logger()),
	)
	if err != nil {
		return err
	}

	w := defaultOutput
	fmt.Fprintf(w, "Archive: %s\n", rep.Path)
	fmt.Fprintf(w, "Entries: %d of %d valid\n", rep.Valid, rep.Expected)
	fmt.Fprintf(w, "Declared size: %s, computed %s\n",
		humanize.Bytes(rep.Header.TotalSize), humanize.Bytes(rep.End))
	for _, m := range rep.Mismatches {
		fmt.Fprintf(w, "  offset mismatch: %s stored %d, expected %d\n", m.Name, m.Stored, m.Computed)
	}
	for _, f := range rep.Failures {
		fmt.Fprintf(w, "  %s\n", f)
	}

	if !rep.Passed() {
		fmt.Fprintln(w, "Result: FAILED")
		return fmt.Errorf("%w: %d of %d entries valid", ErrCheckFailed, rep.Valid, rep.Expected)
	}
	fmt.Fprintln(w, "Result: OK")
	return nil
}
