package jsast

import (
	"bytes"
	"sort"
)

// Print renders the tree back to source: the original text with every
// recorded removal and replacement applied. Bytes outside edited ranges are
// reproduced verbatim.
func Print(t *Tree) []byte {
	return t.render(0, uint32(len(t.source)))
}

// render returns source[start:end] with the edits lying fully inside the range applied.
func (t *Tree) render(start, end uint32) []byte {
	edits := make([]edit, 0, len(t.edits))
	for _, e := range t.edits {
		if e.start >= start && e.end <= end {
			edits = append(edits, e)
		}
	}
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].end > edits[j].end
	})

	var out bytes.Buffer
	out.Grow(int(end - start))

	pos := start
	for _, e := range edits {
		if e.start < pos {
			// Nested inside or overlapping an edit already applied.
			if e.end > pos && e.replacement == nil {
				pos = e.end
			}
			continue
		}
		out.Write(t.source[pos:e.start])
		out.Write(e.replacement)
		pos = e.end
	}
	out.Write(t.source[pos:end])

	return out.Bytes()
}

// lineExtent widens [start, end) to whole lines when the range owns them:
// only indentation precedes it and only whitespace or a line comment follows.
// Blank lines left dangling at the edge of a block or between two blank lines
// are absorbed as well.
func (t *Tree) lineExtent(start, end uint32) (uint32, uint32) {
	src := t.source
	size := uint32(len(src))

	ls := start
	for ls > 0 && isBlank(src[ls-1]) {
		ls--
	}
	if ls > 0 && src[ls-1] != '\n' {
		return start, end
	}

	le := end
	for le < size && isBlank(src[le]) {
		le++
	}
	if bytes.HasPrefix(src[le:], []byte("//")) {
		for le < size && src[le] != '\n' {
			le++
		}
	}
	if le < size && src[le] == '\r' {
		le++
	}
	if le < size && src[le] != '\n' {
		return start, end
	}
	if le < size {
		le++
	}

	prevStart, prevOK := t.previousLine(ls)
	next := t.skipRemovedForward(le)

	prevBlank := prevOK && isBlankLine(src[prevStart:t.skipRemovedBackward(ls)])
	prevOpens := !prevOK || opensBlock(src[prevStart:t.skipRemovedBackward(ls)])

	if nextEnd, ok := t.lineEnd(next); ok && isBlankLine(src[next:nextEnd]) && (prevBlank || prevOpens) {
		return ls, nextEnd
	}

	if prevBlank && closesBlock(src[next:]) {
		ls = prevStart
	}

	return ls, le
}

// previousLine returns the start of the line above pos, skipping lines
// already removed. ok is false at the top of the file.
func (t *Tree) previousLine(pos uint32) (uint32, bool) {
	pos = t.skipRemovedBackward(pos)
	if pos == 0 {
		return 0, false
	}
	i := pos - 1
	for i > 0 && t.source[i-1] != '\n' {
		i--
	}
	return i, true
}

// lineEnd returns the offset just past the newline of the line starting at pos.
func (t *Tree) lineEnd(pos uint32) (uint32, bool) {
	size := uint32(len(t.source))
	if pos >= size {
		return pos, false
	}
	i := pos
	for i < size && t.source[i] != '\n' {
		i++
	}
	if i < size {
		i++
	}
	return i, true
}

func (t *Tree) skipRemovedBackward(pos uint32) uint32 {
	for moved := true; moved; {
		moved = false
		for _, e := range t.edits {
			if e.replacement == nil && e.end == pos && e.start < pos {
				pos = e.start
				moved = true
			}
		}
	}
	return pos
}

func (t *Tree) skipRemovedForward(pos uint32) uint32 {
	for moved := true; moved; {
		moved = false
		for _, e := range t.edits {
			if e.replacement == nil && e.start == pos && e.end > pos {
				pos = e.end
				moved = true
			}
		}
	}
	return pos
}

// startsLine reports whether only indentation precedes pos on its line.
func (t *Tree) startsLine(pos uint32) bool {
	for pos > 0 && isBlank(t.source[pos-1]) {
		pos--
	}
	return pos == 0 || t.source[pos-1] == '\n'
}

// indentOf returns the column of pos within its line.
func (t *Tree) indentOf(pos uint32) int {
	ls := pos
	for ls > 0 && t.source[ls-1] != '\n' {
		ls--
	}
	return int(pos - ls)
}

// reindent shifts every line but the first by delta columns to the left.
// A negative delta indents with spaces.
func reindent(text []byte, delta int) []byte {
	if delta == 0 || !bytes.Contains(text, []byte("\n")) {
		return text
	}

	lines := bytes.Split(text, []byte("\n"))
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if delta > 0 {
			n := 0
			for n < delta && n < len(line) && isBlank(line[n]) {
				n++
			}
			lines[i] = line[n:]
			continue
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		lines[i] = append(bytes.Repeat([]byte(" "), -delta), line...)
	}

	return bytes.Join(lines, []byte("\n"))
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

func isBlankLine(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0
}

func opensBlock(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	return len(trimmed) > 0 && trimmed[len(trimmed)-1] == '{'
}

func closesBlock(rest []byte) bool {
	trimmed := bytes.TrimLeft(rest, " \t")
	if len(trimmed) == 0 {
		return true
	}
	switch trimmed[0] {
	case '}', ')', ']':
		return true
	}
	return false
}
