package command

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/meigma/zov"
)

const (
	CreateDescription = "Create an archive from a directory"
	CreateHelp        = CreateDescription + "\n\n" +
		"Every regular file below the directory is stored, following symbolic\n" +
		"links. Files of 100 bytes or fewer and files with already-compressed\n" +
		"extensions are stored as-is unless --no-skip is given."
)

// Create represents the `create` command of the zov cli tool.
type Create struct {
	cmd
	Codec    string `short:"c" long:"codec" default:"rle" choice:"rle" choice:"zstd" choice:"lz4" choice:"none" description:"Payload codec"`
	Password string `short:"p" long:"password" description:"Mark the archive as password protected (nothing is encrypted)"`
	MaxFiles int    `long:"max-files" description:"Fail if the directory holds more files than this (default: 65535)"`
	NoSkip   bool   `long:"no-skip" description:"Consider every file for compression"`

	Args struct {
		Dir     string `positional-arg-name:"dir" required:"true" description:"Directory to archive"`
		Archive string `positional-arg-name:"archive" required:"true" description:"Archive file to write"`
	} `positional-args:"yes"`
}

// Execute builds the archive and prints a summary, it honors the
// go-flags.Commander interface.
func (c *Create) Execute(args []string) error {
	algo, err := zov.ParseAlgorithm(c.Codec)
	if err != nil {
		return err
	}

	opts := []zov.CreateOption{
		zov.CreateWithCodec(algo),
		zov.CreateWithLogger(c.logger()),
		zov.CreateWithMaxFiles(c.MaxFiles),
	}
	if c.Password != "" {
		opts = append(opts, zov.CreateWithPassword(c.Password))
	}
	if c.NoSkip {
		opts = append(opts, zov.CreateWithSkipCompression())
	}

	ctx, cancel := interruptible()
	defer cancel()

	stats, err := zov.Create(ctx, c.Args.Dir, c.Args.Archive, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(defaultOutput, "Created %s: %d files, %d compressed, %d skipped\n",
		c.Args.Archive, stats.Files, stats.Compressed, len(stats.Skipped))
	fmt.Fprintf(defaultOutput, "Input %s, archive %s\n",
		humanize.Bytes(stats.InputBytes), humanize.Bytes(stats.Header.TotalSize))
	return nil
}
