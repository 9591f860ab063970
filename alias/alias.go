// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package alias implements a table of lineage aliases.
//
// Lineage names are hierarchical:
// a sublineage is named after its parent lineage,
// a dot,
// and a serial number
// (e.g., B.1.1 is a sublineage of B.1).
// When the number of dots in a name reaches a threshold,
// the name is compressed
// by replacing its prefix with a new letter code
// (e.g., B.1.1.529.1 is compressed as BA.1),
// and the original name is stored in the table
// so it can be expanded later.
package alias

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultDepth is the default number of dots
// that triggers a name compression.
const DefaultDepth = 4

// A Table stores lineage aliases.
type Table struct {
	depth int

	// compressed name -> expanded name
	names map[string]string

	// letter code -> expanded prefix
	codes map[string]string

	// expanded prefix -> letter code
	prefix map[string]string

	// letter codes in use
	used map[string]bool
}

// New creates a new alias table
// with the indicated compression depth.
// If depth is less than 1,
// the default depth will be used.
func New(depth int) *Table {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &Table{
		depth:  depth,
		names:  make(map[string]string),
		codes:  make(map[string]string),
		prefix: make(map[string]string),
		used:   make(map[string]bool),
	}
}

// Depth returns the compression depth of the table.
func (t *Table) Depth() int {
	return t.depth
}

// Reserve marks the letter codes
// used by the given names
// so they will not be used
// for new compressed names.
func (t *Table) Reserve(names ...string) {
	for _, n := range names {
		lead, _, _ := strings.Cut(n, ".")
		if !isCode(lead) {
			continue
		}
		t.used[lead] = true
	}
}

// Name returns the name of a new sublineage
// of the given parent lineage.
// If the name is too deep,
// it will be compressed,
// and the alias stored in the table.
func (t *Table) Name(parent string, serial int) string {
	return t.Compress(parent + "." + strconv.Itoa(serial))
}

// Peek returns the name that Compress
// will return for the given name,
// without modifying the table.
func (t *Table) Peek(name string) string {
	short, _, _ := t.resolve(name)
	return short
}

// Compress returns the compressed form of a name.
// If the name is compressed,
// the alias is stored in the table.
//
// Names with fewer dots than the depth of the table,
// or names in which the segment before the first dot
// is not a letter code,
// are returned unchanged.
// Letter codes are upper case,
// so names with a lower case lead
// (e.g., auto.1.1.1.1)
// are never compressed.
func (t *Table) Compress(name string) string {
	t.Reserve(name)
	short, code, prefix := t.resolve(name)
	if short == name {
		return name
	}
	if _, ok := t.codes[code]; !ok {
		t.codes[code] = prefix
		t.prefix[prefix] = code
		t.used[code] = true
	}
	t.names[short] = t.Expand(name)
	return short
}

func (t *Table) resolve(name string) (short, code, prefix string) {
	if strings.Count(name, ".") < t.depth {
		return name, "", ""
	}
	lead, _, _ := strings.Cut(name, ".")
	if !isCode(lead) {
		return name, "", ""
	}

	i := strings.LastIndexByte(name, '.')
	prefix = t.Expand(name[:i])
	last := name[i+1:]

	code, ok := t.prefix[prefix]
	if !ok {
		code = Increment(lead)
		for t.used[code] {
			code = Increment(code)
		}
	}
	return code + "." + last, code, prefix
}

// Expand returns the expanded form of a name.
// If the name is not compressed,
// it returns the name unchanged.
func (t *Table) Expand(name string) string {
	if full, ok := t.names[name]; ok {
		return full
	}
	lead, rest, found := strings.Cut(name, ".")
	full, ok := t.codes[lead]
	if !ok {
		return name
	}
	if !found {
		return full
	}
	return full + "." + rest
}

// Lookup returns the expanded name
// stored for a compressed name.
func (t *Table) Lookup(name string) (string, bool) {
	full, ok := t.names[name]
	return full, ok
}

// Add adds an alias to the table.
func (t *Table) Add(short, full string) {
	t.names[short] = full

	lead, _, found := strings.Cut(short, ".")
	if !isCode(lead) || !found {
		return
	}
	i := strings.LastIndexByte(full, '.')
	if i < 0 {
		return
	}
	prefix := full[:i]
	if _, ok := t.codes[lead]; !ok {
		t.codes[lead] = prefix
		t.prefix[prefix] = lead
	}
	t.used[lead] = true
}

// Aliases returns the compressed names
// stored in the table.
func (t *Table) Aliases() []string {
	ls := make([]string, 0, len(t.names))
	for n := range t.names {
		ls = append(ls, n)
	}
	slices.Sort(ls)
	return ls
}

// Len returns the number of aliases
// in the table.
func (t *Table) Len() int {
	return len(t.names)
}

// Reserved letters
// that are not used in letter codes.
var reserved = map[byte]bool{
	'I': true,
	'O': true,
	'X': true,
}

// Increment returns the next letter code.
//
// Letters are incremented from the rightmost position,
// skipping the letters I, O, and X.
// After Z,
// the position rolls to A,
// and the increment is carried to the left.
// If all positions roll,
// a new position is added
// (e.g., Z -> AA, AZ -> BA, ZZ -> AAA).
func Increment(code string) string {
	b := []byte(code)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == 'Z' {
			b[i] = 'A'
			continue
		}
		b[i]++
		for reserved[b[i]] {
			b[i]++
		}
		return string(b)
	}
	return "A" + string(b)
}

func isCode(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
