package oplog

import (
	"strings"

	"github.com/arthur-debert/semtparser/pkg/logging"
	"github.com/valyala/fastjson"
)

// DefaultExportFile is used when an EXPORT payload names no output file.
const DefaultExportFile = "export_output"

// Payload gives tolerant access to an AdditionalData JSON object. Anything
// that is not a JSON object reads as {}.
type Payload struct {
	value *fastjson.Value
	valid bool
}

// ParsePayload parses raw AdditionalData.
func ParsePayload(raw string) *Payload {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return emptyPayload()
	}

	v, err := fastjson.Parse(raw)
	if err != nil {
		log := logging.GetLogger("oplog.payload")
		log.Debug().
			Err(err).
			Str("data", raw).
			Msg("Malformed AdditionalData, treating as {}")
		return emptyPayload()
	}
	if v.Type() != fastjson.TypeObject {
		return emptyPayload()
	}
	return &Payload{value: v, valid: true}
}

func emptyPayload() *Payload {
	return &Payload{value: fastjson.MustParse("{}")}
}

// Payload parses the record's AdditionalData.
func (r Record) Payload() *Payload {
	return ParsePayload(r.AdditionalData)
}

// Valid reports whether the raw data was a JSON object.
func (p *Payload) Valid() bool {
	return p.valid
}

// String returns the string value of key, or "".
func (p *Payload) String(key string) string {
	v := p.value.Get(key)
	if v == nil || v.Type() != fastjson.TypeString {
		return ""
	}
	return string(v.GetStringBytes())
}

// Strings returns the string items of the array at key. Non-string items
// are skipped.
func (p *Payload) Strings(key string) []string {
	return stringItems(p.value.GetArray(key))
}

// Properties lists extension properties: the "property" array when
// present, otherwise the space separated "properties" string, followed by
// any "weatherParams" and "labels".
func (p *Payload) Properties() []string {
	var props []string
	if v := p.value.Get("property"); v != nil && v.Type() == fastjson.TypeArray {
		props = stringItems(v.GetArray())
	} else {
		props = strings.Fields(p.String("properties"))
	}
	props = append(props, p.Strings("weatherParams")...)
	props = append(props, p.Strings("labels")...)
	return props
}

// DateColumn returns the date column named by the first "dates" entry,
// which holds it as the third array item.
func (p *Payload) DateColumn() string {
	obj := p.object("dates")
	if obj == nil {
		return ""
	}

	column := ""
	first := true
	obj.Visit(func(_ []byte, v *fastjson.Value) {
		if !first {
			return
		}
		first = false
		items := v.GetArray()
		if len(items) > 2 && items[2].Type() == fastjson.TypeString {
			column = string(items[2].GetStringBytes())
		}
	})
	return column
}

// AdditionalColumns returns the keys of "additionalColumns" in document order.
func (p *Payload) AdditionalColumns() []string {
	obj := p.object("additionalColumns")
	if obj == nil {
		return nil
	}

	var cols []string
	obj.Visit(func(key []byte, _ *fastjson.Value) {
		cols = append(cols, string(key))
	})
	return cols
}

// ExportFormat returns the "format" of an export payload.
func (p *Payload) ExportFormat() string {
	return p.String("format")
}

// OutputFile returns the "outputFile" of an export payload.
func (p *Payload) OutputFile() string {
	if f := p.String("outputFile"); f != "" {
		return f
	}
	return DefaultExportFile
}

// JSON returns the payload as compact JSON.
func (p *Payload) JSON() string {
	return string(p.value.MarshalTo(nil))
}

func (p *Payload) object(key string) *fastjson.Object {
	v := p.value.Get(key)
	if v == nil || v.Type() != fastjson.TypeObject {
		return nil
	}
	obj, err := v.Object()
	if err != nil {
		return nil
	}
	return obj
}

func stringItems(items []*fastjson.Value) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type() == fastjson.TypeString {
			out = append(out, string(item.GetStringBytes()))
		}
	}
	return out
}
