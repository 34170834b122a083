// Package tokenfile loads ivy token streams from disk.
//
// The parser consumes tokens, not text, so fixtures and the ivy command read
// pre-lexed streams in one of two formats:
//
//   - word files (.tok): whitespace-separated spellings, see [ParseWords]
//   - YAML files (.yaml, .yml): an explicit token list, see [DecodeYAML]
package tokenfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/metaphox/ivy-lang/ast"
)

// Format identifies a token file encoding.
type Format int

const (
	Words Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "words"
}

// FormatOf picks the format from the file extension. Anything that is not
// .yaml or .yml is read as a word file.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return Words
}

// Error reports a malformed token file. Line and Col locate the problem in
// the file, when known.
type Error struct {
	File      string
	Line, Col int
	Msg       string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(":")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:%d:", e.Line, e.Col)
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(e.Msg)
	return b.String()
}

// Read decodes a whole token stream from r.
func Read(r io.Reader, f Format) ([]ast.Token, error) {
	if f == YAML {
		return DecodeYAML(r)
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}
	return ParseWords(string(src))
}

// Load reads the token file at path, choosing the format with [FormatOf].
func Load(path string) ([]ast.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()

	toks, err := Read(f, FormatOf(path))
	if err != nil {
		var ferr *Error
		if errors.As(err, &ferr) {
			ferr.File = path
		}
		return nil, err
	}
	return toks, nil
}
