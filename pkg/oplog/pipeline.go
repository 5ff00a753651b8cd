package oplog

import (
	"encoding/json"
	"slices"

	"github.com/arthur-debert/semtparser/pkg/internal/hashutil"
	"github.com/arthur-debert/semtparser/pkg/logging"
	"github.com/gowebpki/jcs"
)

// DefaultDatasetID is used when no operation names a dataset.
const DefaultDatasetID = "0"

// Options configures Normalize.
type Options struct {
	Window            WindowMode
	UnknownTimestamps UnknownTimestamps
	Resolve           ResolveOptions
	DefaultDatasetID  string
}

// DefaultOptions returns the canonical pipeline settings.
func DefaultOptions() Options {
	return Options{DefaultDatasetID: DefaultDatasetID}
}

// Result is the normalized view of one log, ready for an emitter.
type Result struct {
	Window Window

	// Records are the parsed window lines in chronological order.
	Records []Record

	// Operations is the resolved list in emission order.
	Operations []Record

	DatasetID      string
	DeletedColumns []string
	HasExport      bool

	// Digest is the hex SHA-256 of the RFC 8785 form of Operations.
	Digest string
}

// Found reports whether the log contained a load cycle.
func (r Result) Found() bool {
	return r.Window.Found
}

// SortChronological returns records ordered by timestamp. Ties, including
// all invalid timestamps, keep their input order.
func SortChronological(records []Record, policy UnknownTimestamps) []Record {
	sorted := clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return CompareTimestamps(a.Timestamp, b.Timestamp, policy)
	})
	return sorted
}

// Normalize runs the whole pipeline over a log's lines (oldest first).
func Normalize(lines []string, opts Options) Result {
	log := logging.GetLogger("oplog.pipeline")
	done := logging.LogOperationStart(log, "normalize")
	defer done()

	res := Result{
		Window:         ExtractWindow(lines, opts.Window),
		Records:        []Record{},
		Operations:     []Record{},
		DeletedColumns: []string{},
	}

	if res.Window.Found {
		res.Records = SortChronological(ParseLines(res.Window.Lines), opts.UnknownTimestamps)
		res.Operations = Resolve(res.Records, opts.Resolve)
	} else {
		log.Info().Msg("No GET_TABLE entry found, producing an empty operation list")
	}

	res.DatasetID = opts.DefaultDatasetID
	if res.DatasetID == "" {
		res.DatasetID = DefaultDatasetID
	}
	for _, op := range res.Operations {
		if op.DatasetID != "" {
			res.DatasetID = op.DatasetID
			break
		}
	}

	for _, op := range res.Operations {
		if op.Type == OpSaveTable {
			res.DeletedColumns = ParseDeletedColumns(op.DeletedCols)
			break
		}
	}

	for _, op := range res.Operations {
		if op.Type == OpExport {
			res.HasExport = true
			break
		}
	}

	digest, err := Digest(res.Operations)
	if err != nil {
		log.Warn().Err(err).Msg("Could not compute operation digest")
	}
	res.Digest = digest

	log.Info().
		Int("lines", len(res.Window.Lines)).
		Int("records", len(res.Records)).
		Int("operations", len(res.Operations)).
		Str("datasetId", res.DatasetID).
		Msg("Normalized operation log")
	return res
}

// Digest returns the hex SHA-256 of the canonical (RFC 8785) JSON encoding
// of records.
func Digest(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", err
	}
	return hashutil.Sum(canonical), nil
}
