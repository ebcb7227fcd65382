// Package zov packs a directory tree into a single archive file and unpacks
// it again.
//
// An archive is a fixed header followed by one record per file: an entry
// header carrying the relative path, stored size, Unix mode bits, and
// position, then the payload. Payloads are run-length encoded by default
// when that makes them smaller; zstd and lz4 are available as alternatives.
// All integers are big-endian.
//
// # Quick Start
//
// Build an archive:
//
//	stats, err := zov.Create(ctx, "./src", "src.zov")
//	if err != nil {
//	    return err
//	}
//	for _, skipped := range stats.Skipped {
//	    log.Print(skipped)
//	}
//
// Extract it:
//
//	stats, err := zov.Extract(ctx, "src.zov", "./out")
//	if errors.Is(err, zov.ErrPartial) {
//	    // some entries were skipped; see stats.Failures
//	}
//
// # Errors
//
// Failures that stop an operation are returned as errors. Problems with a
// single file are collected as [*EntryError] values in the result and the
// operation continues. Extraction that does not write every entry returns a
// [*PartialError] alongside its stats.
//
// # Passwords
//
// [CreateWithPassword] only records that a password was supplied; payloads
// are not encrypted. Extracting such an archive requires
// [ExtractWithPassword] with any non-empty value.
package zov
