package batch

import "fmt"

// firstID is the numeric suffix of the first accepted record.
const firstID = 2

// IDSequence hands out record IDs "1.2", "1.3", ... for one run. It is not
// safe for concurrent use; the runner's collector owns it.
type IDSequence struct {
	next int
}

// NewIDSequence returns a sequence starting at "1.2".
func NewIDSequence() *IDSequence {
	return &IDSequence{next: firstID}
}

// Next returns the next ID.
func (s *IDSequence) Next() string {
	id := fmt.Sprintf("1.%d", s.next)
	s.next++
	return id
}
