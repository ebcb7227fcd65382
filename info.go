package zov

import (
	"bytes"
	_ "crypto/sha256" // registers digest.SHA256
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/zov/internal/container"
)

// ArchiveInfo summarizes an archive file.
type ArchiveInfo struct {
	Path              string        `json:"path"`
	Size              uint64        `json:"size"`
	EntryCount        int           `json:"entryCount"`
	TotalSize         uint64        `json:"totalSize"`
	PasswordProtected bool          `json:"passwordProtected"`
	CompressedEntries int           `json:"compressedEntries"`
	PayloadBytes      uint64        `json:"payloadBytes"`
	OverheadPercent   float64       `json:"overheadPercent"`
	Readable          bool          `json:"readable"`
	Digest            digest.Digest `json:"digest"`
}

// Info reads the header and entry headers of the archive at archivePath and
// computes its sha256 digest.
//
// OverheadPercent is the share of the file taken by the archive header and
// entry headers. Readable is false when an entry header could not be read;
// the counts then cover only the entries before it.
func Info(archivePath string) (*ArchiveInfo, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	r, err := container.NewReader(f, st.Size())
	if err != nil {
		return nil, err
	}

	hdr := r.Header()
	info := &ArchiveInfo{
		Path:              archivePath,
		Size:              r.Size(),
		EntryCount:        int(hdr.EntryCount),
		TotalSize:         hdr.TotalSize,
		PasswordProtected: hdr.HasPassword,
		Readable:          true,
	}
	for range info.EntryCount {
		e, err := r.Next()
		if err != nil {
			info.Readable = false
			if r.Err() != nil {
				break
			}
		}
		info.PayloadBytes += e.Size
		if e.Compressed {
			info.CompressedEntries++
		}
	}
	if info.Size > 0 && info.PayloadBytes <= info.Size {
		info.OverheadPercent = float64(info.Size-info.PayloadBytes) / float64(info.Size) * 100
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	info.Digest, err = digest.SHA256.FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("digest archive: %w", err)
	}
	return info, nil
}

// WriteText writes a human-readable summary to w.
func (i *ArchiveInfo) WriteText(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "File: %s\n", i.Path)
	fmt.Fprintf(&buf, "Size: %d bytes\n", i.Size)
	fmt.Fprintf(&buf, "File count: %d\n", i.EntryCount)
	fmt.Fprintf(&buf, "Compressed entries: %d\n", i.CompressedEntries)
	fmt.Fprintf(&buf, "Total archive size: %d bytes\n", i.TotalSize)
	fmt.Fprintf(&buf, "Password protected: %s\n", yesNo(i.PasswordProtected))
	fmt.Fprintf(&buf, "Structure overhead: %.2f%%\n", i.OverheadPercent)
	fmt.Fprintf(&buf, "Digest: %s\n", i.Digest)
	if !i.Readable {
		buf.WriteString("Warning: archive is truncated or corrupt\n")
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteJSON writes the summary as indented JSON to w.
func (i *ArchiveInfo) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(i)
}
