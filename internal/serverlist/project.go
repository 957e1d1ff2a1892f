package serverlist

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Line is one row of projection output.
type Line struct {
	Label string
	Value string
}

// String formats the line as "label<TAB>value".
func (l Line) String() string {
	return l.Label + "\t" + l.Value
}

// Project extracts key from every record that has it. Array values expand to
// one Line per element; any other value, objects included, is a single Line.
// Records without key are skipped; if none has it, *UnknownKeyError is
// returned.
func Project(dir Directory, key string) ([]Line, error) {
	var (
		lines   []Line
		matched bool
	)
	for _, r := range dir {
		v, ok := r.Get(key)
		if !ok {
			continue
		}
		matched = true

		label := Label(r)
		if v.IsArray() {
			v.ForEach(func(_, elem gjson.Result) bool {
				lines = append(lines, Line{Label: label, Value: Render(elem)})
				return true
			})
			continue
		}
		lines = append(lines, Line{Label: label, Value: Render(v)})
	}
	if !matched {
		return nil, &UnknownKeyError{Key: key}
	}
	return lines, nil
}

// Label returns "address:port" for r. Missing parts render empty.
func Label(r Record) string {
	return renderField(r, "address") + ":" + renderField(r, "port")
}

func renderField(r Record, name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	return Render(v)
}

var compactOpts = &pretty.Options{Width: 80, Indent: "  ", SortKeys: true}

// Render returns the display text of a JSON value: a string as its bare
// characters, anything else as compact JSON with object keys sorted.
func Render(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.JSON:
		return string(pretty.Ugly(pretty.PrettyOptions([]byte(v.Raw), compactOpts)))
	default: // number, true, false, null
		return v.Raw
	}
}
