package emit_test

import (
	"fmt"
	"time"

	"github.com/arthur-debert/semtparser/pkg/emit"
	"github.com/arthur-debert/semtparser/pkg/oplog"
	"github.com/arthur-debert/semtparser/pkg/testutil"
)

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

var (
	ts      = testutil.TS
	logLine = testutil.LogLine
)

func fullSession() []string {
	return []string{
		logLine(ts(0), "GET_TABLE", "DatasetId", "7"),
		logLine(ts(1), "RECONCILIATION", "ColumnName", "City", "Reconciler", "geo",
			"AdditionalData", `{"additionalColumns":{"Country":{}}}`),
		logLine(ts(2), "EXTENSION", "ColumnName", "City", "Extender", "meteo",
			"AdditionalData", `{"properties":"temp rain","dates":{"0":["2024","x","Date"]}}`),
		logLine(ts(3), "PROPAGATE_TYPE", "ColumnName", "City",
			"AdditionalData", `{"type":{"id":"wd:Q515"}}`),
		logLine(ts(4), "MODIFICATION", "ColumnName", "Date", "Modifier", "dateFormatter",
			"AdditionalData", `{"formatType":"iso"}`),
		logLine(ts(5), "FILTER_ROWS", "ColumnName", "City"),
		logLine(ts(6), "EXPORT", "AdditionalData", `{"format":"csv","outputFile":"out.csv"}`),
		logLine(ts(7), "SAVE_TABLE", "DeletedCols", "tmp|-|scratch"),
	}
}

func testParams() emit.Params {
	return emit.Params{
		Source:    "./logs.txt",
		TableFile: "./table_1.csv",
		TableName: emit.TableName("", fixedNow),
		Service: emit.Service{
			BaseURL:  "http://localhost:3003",
			APIURL:   "http://localhost:3003/api",
			Username: "user",
			Password: "secret",
		},
		DefaultExport: "results.json",
		Version:       "test",
		Now:           fixedNow,
	}
}

func document(lines []string) emit.Document {
	return emit.NewDocument(oplog.Normalize(lines, oplog.DefaultOptions()), testParams())
}

// sequentialIDs returns cell ids cell-1, cell-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("cell-%d", n)
	}
}
