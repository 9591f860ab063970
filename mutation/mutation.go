// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mutation implements mutation events
// as they are attached to the branches
// of a mutation-annotated tree.
//
// A mutation is written as a string
// with an optional chromosome (or segment),
// followed by a colon,
// an optional reference allele,
// the locus,
// and the alternate allele.
// For example:
//
//	A23403G
//	23403G
//	NC_045512v2:A23403G
package mutation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrSyntax is returned when a mutation string
// can not be parsed.
var ErrSyntax = errors.New("invalid mutation string")

// An Event is a mutation in a given locus.
type Event struct {
	// Chromosome or segment,
	// empty if undefined.
	Chrom string

	// Locus position.
	Loc int

	// Reference allele,
	// empty if undefined.
	Ref string

	// Alternate allele.
	Alt string
}

// Parse reads a mutation string.
func Parse(s string) (Event, error) {
	s = strings.TrimSpace(s)
	var e Event
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		e.Chrom = s[:i]
		s = s[i+1:]
	}
	if len(s) < 2 {
		return Event{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}

	e.Alt = s[len(s)-1:]
	data := s[:len(s)-1]
	if r := rune(data[0]); !unicode.IsDigit(r) {
		e.Ref = data[:1]
		data = data[1:]
	}
	if !isAllele(e.Alt) || (e.Ref != "" && !isAllele(e.Ref)) {
		return Event{}, fmt.Errorf("%w: %q: bad allele", ErrSyntax, s)
	}

	loc, err := strconv.Atoi(data)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %q: bad locus", ErrSyntax, s)
	}
	if loc < 0 {
		return Event{}, fmt.Errorf("%w: %q: negative locus", ErrSyntax, s)
	}
	e.Loc = loc
	return e, nil
}

// ParseList reads a comma separated list of mutations.
// An empty string is an empty list.
func ParseList(s string) ([]Event, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	ls := make([]Event, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			continue
		}
		e, err := Parse(f)
		if err != nil {
			return nil, err
		}
		ls = append(ls, e)
	}
	return ls, nil
}

// String returns the mutation string of an event.
func (e Event) String() string {
	s := e.Ref + strconv.Itoa(e.Loc) + e.Alt
	if e.Chrom != "" {
		return e.Chrom + ":" + s
	}
	return s
}

// Join returns a list of mutations
// as a string using the indicated separator.
func Join(ls []Event, sep string) string {
	str := make([]string, 0, len(ls))
	for _, e := range ls {
		str = append(str, e.String())
	}
	return strings.Join(str, sep)
}

// SameLocus returns true if both events
// are in the same chromosome and locus.
func SameLocus(a, b Event) bool {
	return a.Chrom == b.Chrom && a.Loc == b.Loc
}

// Opposite returns true if b reverts a,
// i.e. they are in the same locus
// with the reference and the alternate alleles swapped.
func Opposite(a, b Event) bool {
	if !SameLocus(a, b) {
		return false
	}
	if a.Ref == "" || b.Ref == "" {
		return false
	}
	return a.Ref == b.Alt && a.Alt == b.Ref
}

func isAllele(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '-' && r != '*' {
			return false
		}
	}
	return s != ""
}
