package token

import (
	"fmt"
	"sort"
	"strconv"
)

// PosDoc maps byte offsets of a document to zero based lines and columns.
type PosDoc struct {
	d []byte
	n []int
}

func NewPosDoc(d []byte) *PosDoc {
	p := &PosDoc{d: d}
	for i, c := range d {
		switch {
		case c == '\n':
			p.n = append(p.n, i)
		case c == '\r' && (i+1 == len(d) || d[i+1] != '\n'):
			p.n = append(p.n, i)
		}
	}
	return p
}

func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 0, off
	}
	return di, off - p.n[di-1] - 1
}

// Offset is the inverse of LineCol. Columns past the end of a line clamp to
// the line end.
func (p *PosDoc) Offset(line, col int) int {
	if line <= 0 {
		return min(max(col, 0), p.lineEnd(0))
	}
	if line > len(p.n) {
		return len(p.d)
	}
	start := p.n[line-1] + 1
	return min(start+max(col, 0), p.lineEnd(line))
}

func (p *PosDoc) lineEnd(line int) int {
	if line < len(p.n) {
		return p.n[line]
	}
	return len(p.d)
}

func (p *PosDoc) Lines() int {
	return len(p.n) + 1
}

func (d *PosDoc) Pos(i int) *Pos {
	return &Pos{
		I: i,
		D: d,
	}
}

type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) LineCol() (int, int) {
	return p.D.LineCol(p.I)
}

func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

func (p Pos) String() string {
	sample := "?"
	if p.D != nil && len(p.D.d) > 0 {
		sample = string(p.D.d[max(0, min(p.I, len(p.D.d))-5):min(p.I+5, len(p.D.d))])
	}
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.I, p.Line(), p.Col())
}
