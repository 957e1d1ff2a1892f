// Package serverlist fetches a JSON server directory and answers two
// questions about it: which fields exist, and what one field holds per server.
package serverlist

import "github.com/tidwall/gjson"

// Record is one directory entry. Values are kept as gjson results so the
// JSON type of every field survives decoding.
type Record struct {
	fields map[string]gjson.Result
}

// NewRecord builds a Record from a JSON object. A repeated key keeps its
// last value.
func NewRecord(obj gjson.Result) Record {
	r := Record{fields: make(map[string]gjson.Result)}
	obj.ForEach(func(k, v gjson.Result) bool {
		r.fields[k.String()] = v
		return true
	})
	return r
}

// Get returns the value stored under name and whether it was present.
func (r Record) Get(name string) (gjson.Result, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Len is the number of distinct fields in the record.
func (r Record) Len() int { return len(r.fields) }

// Directory is the ordered record list of a single fetch.
type Directory []Record
