package oplog

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/semtparser/pkg/logging"
)

// ExtensionTieBreak picks which of two identical adjacent extensions survives.
type ExtensionTieBreak int

const (
	// KeepFirst drops the newer duplicate extension.
	KeepFirst ExtensionTieBreak = iota
	// KeepLast drops the older duplicate and appends the newer one.
	KeepLast
)

func (k ExtensionTieBreak) String() string {
	if k == KeepLast {
		return "last"
	}
	return "first"
}

// ParseExtensionTieBreak parses "first" or "last".
func ParseExtensionTieBreak(s string) (ExtensionTieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first", "keep-first":
		return KeepFirst, nil
	case "last", "keep-last":
		return KeepLast, nil
	}
	return KeepFirst, fmt.Errorf("unknown extension tie-break %q (want first or last)", s)
}

// EmissionPolicy orders the resolved list for emitters.
type EmissionPolicy int

const (
	// EmitChronological keeps the resolved list in timestamp order.
	EmitChronological EmissionPolicy = iota
	// EmitReconciliationFirst moves every reconciliation ahead of the other
	// operations, keeping relative order within each group.
	EmitReconciliationFirst
)

func (e EmissionPolicy) String() string {
	if e == EmitReconciliationFirst {
		return "reconciliation-first"
	}
	return "chronological"
}

// ParseEmissionPolicy parses "chronological" or "reconciliation-first".
func ParseEmissionPolicy(s string) (EmissionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "chronological":
		return EmitChronological, nil
	case "reconciliation-first":
		return EmitReconciliationFirst, nil
	}
	return EmitChronological, fmt.Errorf("unknown emission policy %q (want chronological or reconciliation-first)", s)
}

// ResolveOptions tunes the dominance rules.
type ResolveOptions struct {
	ExtensionTieBreak ExtensionTieBreak
	Emission          EmissionPolicy
}

// Action is what a single fold step did with the incoming record.
type Action int

const (
	ActionKept Action = iota
	ActionDropped
	ActionReplaced
)

func (a Action) String() string {
	switch a {
	case ActionDropped:
		return "dropped"
	case ActionReplaced:
		return "replaced"
	}
	return "kept"
}

// Decision describes one fold step.
type Decision struct {
	Action Action
	Reason string
}

// ExtensionKey identifies an extension for duplicate detection. The payload
// is compared byte for byte.
type ExtensionKey struct {
	Column         string
	Extender       string
	AdditionalData string
}

// KeyOf returns the extension key of r.
func KeyOf(r Record) ExtensionKey {
	return ExtensionKey{Column: r.Column, Extender: r.Tool, AdditionalData: r.AdditionalData}
}

// Step folds next into acc and returns a new accumulator; acc itself is
// never modified. next is only compared against records already in acc.
func Step(acc []Record, next Record, opts ResolveOptions) ([]Record, Decision) {
	switch next.Type {
	case OpReconciliation:
		prev := lastIndex(acc, func(r Record) bool {
			return r.Type == OpReconciliation && r.Column == next.Column
		})
		if prev < 0 {
			return appendRecord(acc, next), Decision{Action: ActionKept}
		}
		anchored := lastIndex(acc[prev+1:], func(r Record) bool {
			return r.Type == OpExtension && r.Column == next.Column
		}) >= 0
		if anchored {
			return appendRecord(acc, next), Decision{Action: ActionKept, Reason: "extension in between keeps earlier reconciliation"}
		}
		return appendRecord(without(acc, prev), next), Decision{Action: ActionReplaced, Reason: "supersedes earlier reconciliation"}

	case OpExtension:
		prev := lastIndex(acc, func(r Record) bool {
			return r.columnScoped() && r.Column == next.Column
		})
		if prev < 0 || acc[prev].Type != OpExtension || KeyOf(acc[prev]) != KeyOf(next) {
			return appendRecord(acc, next), Decision{Action: ActionKept}
		}
		if opts.ExtensionTieBreak == KeepLast {
			return appendRecord(without(acc, prev), next), Decision{Action: ActionReplaced, Reason: "duplicate extension, keeping latest"}
		}
		return clone(acc), Decision{Action: ActionDropped, Reason: "duplicate extension"}

	case OpModification:
		out := make([]Record, 0, len(acc)+1)
		removed := 0
		for _, r := range acc {
			if r.Type == OpModification && r.Column == next.Column {
				removed++
				continue
			}
			out = append(out, r)
		}
		if removed > 0 {
			out = collapseExtensions(out, next.Column, opts.ExtensionTieBreak)
			return append(out, next), Decision{Action: ActionReplaced, Reason: "supersedes earlier modification"}
		}
		return append(out, next), Decision{Action: ActionKept}

	case OpExport:
		prev := lastIndex(acc, func(r Record) bool { return r.Type == OpExport })
		if prev >= 0 && acc[prev].AdditionalData == next.AdditionalData {
			return clone(acc), Decision{Action: ActionDropped, Reason: "duplicate export"}
		}
		return appendRecord(acc, next), Decision{Action: ActionKept}
	}

	return appendRecord(acc, next), Decision{Action: ActionKept}
}

// Resolve collapses a chronologically sorted record list with a single
// left-to-right fold, then applies the emission policy.
func Resolve(records []Record, opts ResolveOptions) []Record {
	log := logging.GetLogger("oplog.resolve")

	acc := []Record{}
	for _, rec := range records {
		var d Decision
		acc, d = Step(acc, rec, opts)
		if d.Action != ActionKept {
			log.Debug().
				Str("opType", rec.TypeName()).
				Str("column", rec.Column).
				Str("timestamp", rec.Timestamp.String()).
				Str("action", d.Action.String()).
				Str("reason", d.Reason).
				Msg("Resolved operation")
		}
	}

	return ApplyEmission(acc, opts.Emission)
}

// ApplyEmission orders a resolved list according to policy. The input is
// not modified.
func ApplyEmission(records []Record, policy EmissionPolicy) []Record {
	if policy != EmitReconciliationFirst {
		return clone(records)
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Type == OpReconciliation {
			out = append(out, r)
		}
	}
	for _, r := range records {
		if r.Type != OpReconciliation {
			out = append(out, r)
		}
	}
	return out
}

// collapseExtensions removes identical extensions on column that are now
// adjacent because a record between them was removed. tie picks the survivor
// the same way Step does for a duplicate arriving directly.
func collapseExtensions(rs []Record, column string, tie ExtensionTieBreak) []Record {
	drop := map[int]bool{}
	prev := -1
	for i, r := range rs {
		if !r.columnScoped() || r.Column != column {
			continue
		}
		if prev >= 0 && r.Type == OpExtension && rs[prev].Type == OpExtension && KeyOf(rs[prev]) == KeyOf(r) {
			if tie != KeepLast {
				drop[i] = true
				continue
			}
			drop[prev] = true
		}
		prev = i
	}
	if len(drop) == 0 {
		return rs
	}

	out := make([]Record, 0, len(rs)-len(drop)+1)
	for i, r := range rs {
		if !drop[i] {
			out = append(out, r)
		}
	}
	return out
}

// lastIndex returns the index of the last record in rs matching pred, or -1.
func lastIndex(rs []Record, pred func(Record) bool) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if pred(rs[i]) {
			return i
		}
	}
	return -1
}

func clone(rs []Record) []Record {
	out := make([]Record, len(rs))
	copy(out, rs)
	return out
}

func appendRecord(rs []Record, r Record) []Record {
	out := make([]Record, len(rs), len(rs)+1)
	copy(out, rs)
	return append(out, r)
}

func without(rs []Record, idx int) []Record {
	out := make([]Record, 0, len(rs))
	out = append(out, rs[:idx]...)
	return append(out, rs[idx+1:]...)
}
