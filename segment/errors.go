package segment

import (
	"errors"
	"fmt"
)

var (
	ErrWriterNotReady     = errors.New("the underlying writer is not ready")
	ErrOutputPathRequired = errors.New("the output path is required")
)

type ErrStreamIndexOutOfRange struct {
	StreamIndex int
	StreamCount int
}

func (e ErrStreamIndexOutOfRange) Error() string {
	return fmt.Sprintf("stream index %d is out of range [0, %d)", e.StreamIndex, e.StreamCount)
}
