/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: flatten.go
Description: Record flattening for the Akaylee Mapper. Expands nested objects into
dot-delimited field paths up to a bounded depth, treating lists as single leaf
values, so schema inference and pattern detection operate on a flat path space.
*/

package values

// Flat is a flattened record: dot-delimited paths in first-seen order plus
// a path-indexed view of the leaf values.
type Flat struct {
	Paths  []string
	Fields map[string]Value
}

// Lookup returns the value at a path, with a null fallback for absent paths.
func (f *Flat) Lookup(path string) (Value, bool) {
	v, ok := f.Fields[path]
	if !ok {
		return Null(), false
	}
	return v, true
}

// Flatten expands a record into dot-delimited leaf paths. Nested objects
// recurse up to maxDepth levels; an object at the depth bound stays a
// single object-valued leaf. Lists are never expanded.
func Flatten(record Value, maxDepth int) *Flat {
	f := &Flat{Fields: make(map[string]Value)}
	if record.Kind() != KindObject {
		return f
	}
	flattenInto(f, "", record, maxDepth)
	return f
}

func flattenInto(f *Flat, prefix string, obj Value, depthLeft int) {
	for _, key := range obj.Keys() {
		child, _ := obj.Get(key)
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if child.Kind() == KindObject && depthLeft > 1 {
			flattenInto(f, path, child, depthLeft-1)
			continue
		}
		if _, seen := f.Fields[path]; !seen {
			f.Paths = append(f.Paths, path)
		}
		f.Fields[path] = child
	}
}

// PathDepth returns the nesting depth of a dot-delimited path: "a" is 1,
// "a.b.c" is 3.
func PathDepth(path string) int {
	if path == "" {
		return 0
	}
	depth := 1
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			depth++
		}
	}
	return depth
}
