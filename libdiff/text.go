package libdiff

import (
	"errors"
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

var ErrPatch = errors.New("patch error")

type Op int8

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) Prefix() byte {
	switch o {
	case Insert:
		return '+'
	case Delete:
		return '-'
	}
	return ' '
}

// Line is one line of a line diff. From and To are the one based numbers of
// the line in each input; the one an inserted or deleted line lacks is the
// number of the next line there.
type Line struct {
	Op   Op
	Text string
	From int
	To   int
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Line {
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(a, b, false), lines)
	var res []Line
	fi, ti := 1, 1
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, ln := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			res = append(res, Line{Op: op, Text: ln, From: fi, To: ti})
			if op != Insert {
				fi++
			}
			if op != Delete {
				ti++
			}
		}
	}
	return res
}

// Unified formats the line diff of from and to with context lines around
// each change. It returns the empty string when the inputs are equal.
func Unified(fromName, toName, from, to string, context int) string {
	ls := Lines(from, to)
	b := &strings.Builder{}
	i := 0
	for i < len(ls) {
		if ls[i].Op == Equal {
			i++
			continue
		}
		if b.Len() == 0 {
			fmt.Fprintf(b, "--- %s\n+++ %s\n", fromName, toName)
		}
		start := max(0, i-context)
		end := i
		for j := i; j < len(ls); j++ {
			if ls[j].Op != Equal {
				end = j
			} else if j-end > 2*context {
				break
			}
		}
		stop := min(len(ls), end+context+1)
		fromLen, toLen := 0, 0
		for _, l := range ls[start:stop] {
			if l.Op != Insert {
				fromLen++
			}
			if l.Op != Delete {
				toLen++
			}
		}
		fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", ls[start].From, fromLen, ls[start].To, toLen)
		for _, l := range ls[start:stop] {
			b.WriteByte(l.Op.Prefix())
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
		i = stop
	}
	return b.String()
}

// PatchText returns a text patch turning from into to.
func PatchText(from, to string) string {
	diffCfg := diffpatch.New()
	return diffCfg.PatchToText(diffCfg.PatchMake(from, to))
}

// ApplyText applies a patch made by PatchText. Every hunk must apply.
func ApplyText(src, patch string) (string, error) {
	diffCfg := diffpatch.New()
	patches, err := diffCfg.PatchFromText(patch)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, applied := diffCfg.PatchApply(patches, src)
	for i, ok := range applied {
		if !ok {
			return "", fmt.Errorf("%w: hunk %d does not apply", ErrPatch, i)
		}
	}
	return res, nil
}
