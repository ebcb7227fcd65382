package command

import "github.com/meigma/zov"

const (
	InfoDescription = "Show a summary of an archive"
	InfoHelp        = InfoDescription
)

// Info represents the `info` command of the zov cli tool.
type Info struct {
	JSON bool `long:"json" description:"Print the summary as JSON"`

	Args struct {
		Archive string `positional-arg-name:"archive" required:"true" description:"Archive file to read"`
	} `positional-args:"yes"`
}

// Execute prints the summary, it honors the go-flags.Commander interface.
func (c *Info) Execute(args []string) error {
	info, err := zov.Info(c.Args.Archive)
	if err != nil {
		return err
	}
	if c.JSON {
		return info.WriteJSON(defaultOutput)
	}
	return info.WriteText(defaultOutput)
}
