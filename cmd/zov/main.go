package main

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/meigma/zov"
	"github.com/meigma/zov/cmd/zov/command"
)

const (
	name = "zov"
)

// Set at link time with -ldflags "-X main.version=... -X main.build=...".
var (
	version = "dev"
	build   = "unknown"
)

func main() {
	parser := flags.NewNamedParser(name, flags.Default)

	parser.AddCommand("create", command.CreateDescription, command.CreateHelp, &command.Create{})
	parser.AddCommand("extract", command.ExtractDescription, command.ExtractHelp, &command.Extract{})
	parser.AddCommand("list", command.ListDescription, command.ListHelp, &command.List{})
	parser.AddCommand("verify", command.VerifyDescription, command.VerifyHelp, &command.Verify{})
	parser.AddCommand("info", command.InfoDescription, command.InfoHelp, &command.Info{})
	parser.AddCommand("version", command.VersionDescription, command.VersionHelp,
		&command.Version{
			Name:    name,
			Version: version,
			Build:   build,
		})

	_, err := parser.Parse()
	if err == nil {
		return
	}

	var e *flags.Error
	if errors.As(err, &e) {
		switch e.Type {
		case flags.ErrHelp:
			return
		case flags.ErrCommandRequired:
			parser.WriteHelp(os.Stdout)
		}
	}

	// Partial results still produced output; callers can tell them apart.
	if errors.Is(err, zov.ErrPartial) || errors.Is(err, command.ErrCheckFailed) {
		os.Exit(2)
	}
	os.Exit(1)
}
