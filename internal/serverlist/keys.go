package serverlist

import "github.com/tidwall/btree"

func byName(a, b interface{}) bool {
	return a.(string) < b.(string)
}

// Keys returns every field name used by any record in dir, sorted
// byte-wise and without duplicates.
func Keys(dir Directory) []string {
	set := btree.NewNonConcurrent(byName)
	for _, r := range dir {
		for name := range r.fields {
			set.Set(name)
		}
	}

	keys := make([]string, 0, set.Len())
	set.Ascend(nil, func(item interface{}) bool {
		keys = append(keys, item.(string))
		return true
	})
	return keys
}
