package oplog

// Typed views over a Record. Each accessor returns ok=false when the record
// is of another type.

type Reconciliation struct {
	Column            string
	Reconciler        string
	AdditionalColumns []string
}

type Extension struct {
	Column     string
	Extender   string
	Properties []string
	DateColumn string
}

type Propagation struct {
	Column string
	Type   string // compact JSON object
}

type Modification struct {
	Column   string
	Modifier string
	Props    string // compact JSON object
}

type Export struct {
	Format     string
	OutputFile string
}

func (r Record) Reconciliation() (Reconciliation, bool) {
	if r.Type != OpReconciliation {
		return Reconciliation{}, false
	}
	return Reconciliation{
		Column:            r.Column,
		Reconciler:        r.Tool,
		AdditionalColumns: r.Payload().AdditionalColumns(),
	}, true
}

func (r Record) Extension() (Extension, bool) {
	if r.Type != OpExtension {
		return Extension{}, false
	}
	p := r.Payload()
	return Extension{
		Column:     r.Column,
		Extender:   r.Tool,
		Properties: p.Properties(),
		DateColumn: p.DateColumn(),
	}, true
}

func (r Record) Propagation() (Propagation, bool) {
	if r.Type != OpPropagateType {
		return Propagation{}, false
	}
	return Propagation{Column: r.Column, Type: r.Payload().JSON()}, true
}

func (r Record) Modification() (Modification, bool) {
	if r.Type != OpModification {
		return Modification{}, false
	}
	return Modification{Column: r.Column, Modifier: r.Tool, Props: r.Payload().JSON()}, true
}

func (r Record) Export() (Export, bool) {
	if r.Type != OpExport {
		return Export{}, false
	}
	p := r.Payload()
	return Export{Format: p.ExportFormat(), OutputFile: p.OutputFile()}, true
}
