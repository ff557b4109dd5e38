package testutil

import "errors"

// ErrSimulated is a sentinel error for testing error handling paths
var ErrSimulated = errors.New("simulated error for testing")

// FailingReader отдаёт Limit байт нулей, затем возвращает ErrSimulated.
// Используется вместо источника случайных байт.
type FailingReader struct {
	Limit int
	read  int
}

func (r *FailingReader) Read(p []byte) (int, error) {
	if r.read >= r.Limit {
		return 0, ErrSimulated
	}
	n := min(len(p), r.Limit-r.read)
	clear(p[:n])
	r.read += n
	return n, nil
}
