package zov

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/meigma/zov/internal/container"
)

// Listing is the table of contents of an archive.
type Listing struct {
	// Path is the archive path as given to List.
	Path string

	// Size is the archive length in bytes.
	Size uint64

	// Header is the archive header.
	Header Header

	// Entries holds every entry header that could be read, in archive order.
	Entries []Entry

	// Failures holds the error that stopped the listing early, if any.
	Failures []*EntryError
}

// List reads the entry headers of the archive at archivePath without
// reading any payloads.
//
// An unreadable entry stops the listing; the entries before it are returned
// and the problem is recorded in Listing.Failures. Entries with unsafe names
// are recorded as failures and left out of Entries.
func List(archivePath string) (*Listing, error) {
	r, err := container.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	hdr := r.Header()
	l := &Listing{
		Path:    archivePath,
		Size:    r.Size(),
		Header:  hdr,
		Entries: make([]Entry, 0, hdr.EntryCount),
	}
	for i := range int(hdr.EntryCount) {
		e, err := r.Next()
		if err != nil {
			l.Failures = append(l.Failures, &EntryError{Index: i, Op: "read", Path: e.Name, Err: err})
			if r.Err() == nil {
				continue
			}
			break
		}
		l.Entries = append(l.Entries, e)
	}
	return l, nil
}

// StoredBytes returns the sum of all listed payload sizes.
func (l *Listing) StoredBytes() uint64 {
	var total uint64
	for i := range l.Entries {
		total += l.Entries[i].Size
	}
	return total
}

// WriteTable writes a human-readable table of the listing to w.
func (l *Listing) WriteTable(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Archive: %s\n", l.Path)
	fmt.Fprintf(&buf, "Files: %d\n", l.Header.EntryCount)
	fmt.Fprintf(&buf, "Total size: %d bytes\n", l.Header.TotalSize)
	fmt.Fprintf(&buf, "Password protected: %s\n\n", yesNo(l.Header.HasPassword))

	fmt.Fprintf(&buf, "%-50s %-12s %-10s %s\n", "Filename", "Size", "Compressed", "Permissions")
	buf.WriteString(separator)
	for i := range l.Entries {
		e := &l.Entries[i]
		compressed := "no"
		if e.Compressed {
			compressed = e.Algorithm.String()
		}
		fmt.Fprintf(&buf, "%-50s %-12d %-10s %04o\n", e.Name, e.Size, compressed, e.Perm())
	}
	buf.WriteString(separator)
	fmt.Fprintf(&buf, "%-50s %-12d\n", "TOTAL", l.StoredBytes())

	_, err := w.Write(buf.Bytes())
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

var separator = strings.Repeat("-", 50) + " " + strings.Repeat("-", 12) + " " +
	strings.Repeat("-", 10) + " " + strings.Repeat("-", 11) + "\n"
