package preduce

import "fmt"

// A Partition is a half-open range of input indices, [Start, End), assigned to one worker.
type Partition struct {
	Start int
	End   int
}

// Len returns the number of elements covered by this Partition
func (p Partition) Len() int {
	return p.End - p.Start
}

// String returns a textual representation of this Partition
func (p Partition) String() string {
	return fmt.Sprintf("[%d,%d)", p.Start, p.End)
}
