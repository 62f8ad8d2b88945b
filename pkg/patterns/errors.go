/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy for the example parser. Malformed example pairs abort
the whole call; every other irregularity degrades into lower confidence scores
or an unresolved target.
*/

package patterns

import "fmt"

// InvalidExampleError indicates an example pair is missing its input or
// output object, or a side is not object-shaped. Carries the index of the
// offending example.
type InvalidExampleError struct {
	Index  int    // Zero-based index of the malformed example
	Reason string // What was wrong with it
}

func (e *InvalidExampleError) Error() string {
	return fmt.Sprintf("invalid example at index %d: %s", e.Index, e.Reason)
}
