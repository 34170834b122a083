package parser

import (
	"fmt"
	"io"
	"log/slog"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 512

// TupleScan selects how a '(' in expression position is classified as a
// tuple or a parenthesised group.
type TupleScan int

const (
	// ScanNested looks for a comma at the parenthesis' own nesting level,
	// skipping over nested (), [] and {} pairs.
	ScanNested TupleScan = iota
	// ScanFlat stops at the first ')' or ',' regardless of nesting. It
	// reproduces the classification of earlier ivy front ends, under which
	// ((1, 2)) is a tuple and (f(a), 1) is a group.
	ScanFlat
)

func (s TupleScan) String() string {
	switch s {
	case ScanNested:
		return "nested"
	case ScanFlat:
		return "flat"
	}
	return fmt.Sprintf("TupleScan(%d)", int(s))
}

// ParseTupleScan converts "nested" or "flat" to a TupleScan.
func ParseTupleScan(s string) (TupleScan, error) {
	switch s {
	case "", "nested":
		return ScanNested, nil
	case "flat":
		return ScanFlat, nil
	}
	return ScanNested, fmt.Errorf("unknown tuple scan mode %q (want nested or flat)", s)
}

// Options configures a Parser. The zero value is ready to use.
type Options struct {
	// Logger receives one line when a parse starts and one when it ends.
	// Grammar productions never log. Nil discards.
	Logger *slog.Logger
	// Tracer, when set, is told about every production entered and left.
	Tracer Tracer
	// MaxDepth bounds expression, index and type nesting. Zero means
	// DefaultMaxDepth.
	MaxDepth int
	// TupleScan picks the tuple-vs-group classification.
	TupleScan TupleScan
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}
