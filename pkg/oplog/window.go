package oplog

import (
	"fmt"
	"strings"
)

// WindowMode selects how much of the log after the last SAVE_TABLE is kept.
type WindowMode int

const (
	// WindowCycle keeps the last load cycle, from GET_TABLE through the
	// closing SAVE_TABLE.
	WindowCycle WindowMode = iota
	// WindowCycleWithExports also keeps EXPORT lines that follow the
	// closing SAVE_TABLE, up to the next boundary line.
	WindowCycleWithExports
)

func (m WindowMode) String() string {
	if m == WindowCycleWithExports {
		return "cycle+exports"
	}
	return "cycle"
}

// ParseWindowMode parses "cycle" or "cycle+exports".
func ParseWindowMode(s string) (WindowMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cycle":
		return WindowCycle, nil
	case "cycle+exports", "cycle-with-exports":
		return WindowCycleWithExports, nil
	}
	return WindowCycle, fmt.Errorf("unknown window mode %q (want cycle or cycle+exports)", s)
}

// Window is the slice of the log selected for processing. Start and End are
// line indices into the full log; End is -1 when the cycle has no closing
// SAVE_TABLE.
type Window struct {
	Lines []string
	Start int
	End   int
	Found bool
}

// ExtractWindow finds the last table-load cycle in lines (oldest first).
//
// Scanning backward, the first SAVE_TABLE met is the end boundary and the
// first GET_TABLE met is the start boundary. Without a GET_TABLE there is no
// window. Boundaries are tracked by index, so identical duplicate lines
// cannot confuse the forward pass.
func ExtractWindow(lines []string, mode WindowMode) Window {
	start, end := -1, -1
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		t := lineOpType(line)
		if t == OpGetTable {
			start = i
			break
		}
		if t == OpSaveTable && end < 0 {
			end = i
		}
	}

	if start < 0 {
		return Window{Start: -1, End: end}
	}

	stop := len(lines) - 1
	if end >= 0 {
		stop = end
	}

	w := Window{Start: start, End: end, Found: true}
	for i := start; i <= stop; i++ {
		if strings.TrimSpace(lines[i]) != "" {
			w.Lines = append(w.Lines, lines[i])
		}
	}

	if mode == WindowCycleWithExports && end >= 0 {
		for i := end + 1; i < len(lines); i++ {
			line := lines[i]
			if strings.TrimSpace(line) == "" {
				continue
			}
			t := lineOpType(line)
			if t.IsBoundary() {
				break
			}
			if t == OpExport {
				w.Lines = append(w.Lines, line)
			}
		}
	}

	return w
}
