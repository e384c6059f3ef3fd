package driver

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"glslu/internal/diag"
	"glslu/internal/unit"
)

// glslang style: "ERROR: path/to/file.frag:12: 'foo' : undeclared identifier"
var compilerLogLine = regexp.MustCompile(`^(ERROR|WARNING):\s*(.+?):(\d+):\s?(.*)$`)

// ImportCompilerLog reads compiler output and records each located message
// under diag.ConcernCompilation and category. Each message becomes a
// two-fragment line: a clickable "file:line" reference followed by the text.
// Messages naming a file of the session land in that unit; the rest go to
// owner. It returns the number of imported messages.
func ImportCompilerLog(sess *unit.Session, owner unit.ID, r io.Reader, category string) (int, error) {
	root := sess.Get(owner)
	if root == nil {
		return 0, fmt.Errorf("unknown unit %d", owner)
	}

	type batch struct {
		u       *unit.Unit
		isError bool
	}
	batches := make(map[batch]*diag.LineFileErrors)
	var order []batch

	count := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := compilerLogLine.FindStringSubmatch(strings.TrimRight(sc.Text(), "\r"))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		line, err := safecast.Conv[uint32](n)
		if err != nil {
			continue
		}
		target := matchLogFile(sess, root, m[2])

		key := batch{u: target, isError: m[1] == "ERROR"}
		errs, ok := batches[key]
		if !ok {
			errs = diag.NewLineFileErrors()
			batches[key] = errs
			order = append(order, key)
		}
		el := diag.ErrorLine{Fragments: []diag.ErrorLineFragment{
			{File: target.File, Line: line, Message: m[2] + ":" + m[3] + ":"},
			{Message: strings.TrimSpace(m[4])},
		}}
		errs.SetLine(line, target.File, el)
		count++
	}
	if err := sc.Err(); err != nil {
		return count, fmt.Errorf("read compiler log: %w", err)
	}

	for _, key := range order {
		key.u.SetErrors(diag.ConcernCompilation, category, key.isError, batches[key])
	}
	return count, nil
}

// matchLogFile maps a file name printed by the compiler to a unit: exact
// path first, then a path suffix, then the owner.
func matchLogFile(sess *unit.Session, owner *unit.Unit, name string) *unit.Unit {
	name = filepath.ToSlash(filepath.Clean(name))
	if u, ok := sess.Lookup(name); ok {
		return u
	}
	for _, u := range sess.Units() {
		if strings.HasSuffix(u.File, "/"+name) {
			return u
		}
	}
	return owner
}
