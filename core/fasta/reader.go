// Package fasta reads protein FASTA records.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"profsearch-core/seq"
)

// ErrStop can be returned by a StreamCtx callback to end parsing early
// without surfacing an error to the caller.
var ErrStop = errors.New("fasta: stop")

// Record is one parsed FASTA entry. Name is the full header text after '>'
// with surrounding whitespace trimmed; Residues is the concatenation of all
// sequence lines, each whitespace-trimmed.
type Record struct {
	Name     string
	Residues []byte
}

// Sequence converts the record to the engine's sequence type.
func (r Record) Sequence() seq.Sequence {
	return seq.Sequence{Name: r.Name, Residues: r.Residues}
}

// StreamCtx parses FASTA from r and emits complete records. Records with an
// empty name or no residues are skipped. It is cancelable between records,
// returning ctx.Err() promptly once the context is done.
func StreamCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024 // tolerate single-line sequences
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		name     string
		residues []byte
	)
	flush := func() error {
		if name == "" || len(residues) == 0 {
			return nil
		}
		rec := Record{Name: name, Residues: append([]byte(nil), residues...)}
		return emit(rec)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
			name = string(bytes.TrimSpace(line[1:]))
			residues = residues[:0]
			continue
		}
		residues = append(residues, line...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	if err := flush(); err != nil && !errors.Is(err, ErrStop) {
		return err
	}
	return nil
}

// ReadAllCtx reads up to max records from path ("-" for stdin, gzip
// auto-detected). max <= 0 means unlimited.
func ReadAllCtx(ctx context.Context, path string, max int) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var out []Record
	err = StreamCtx(ctx, rc, func(r Record) error {
		out = append(out, r)
		if max > 0 && len(out) >= max {
			return ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadAll is ReadAllCtx with a background context.
func ReadAll(path string, max int) ([]Record, error) {
	return ReadAllCtx(context.Background(), path, max)
}
