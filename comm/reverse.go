package comm

import (
	"github.com/ansel-r/gomeso/wire"
)

// PackForce packs the force accumulators of n replica slots starting
// at first. Only worker copy 0 is packed; the external reduction folds
// the per-worker copies into it before this call.
func (c *Comm) PackForce(first, n int, buf []float64) int {
	s := c.Store
	w := wire.NewWriter(buf)
	for i := first; i < first+n; i++ {
		w.PutFloat(s.F[i][0])
		w.PutFloat(s.F[i][1])
		w.PutFloat(s.F[i][2])
	}
	return w.Len()
}

// UnpackForce adds packed force triples into the accumulators of the
// listed slots, in list order. Contributions are summed, never
// overwritten; callers zero the accumulators once per step before the
// accumulation cycle starts.
func (c *Comm) UnpackForce(list []int, buf []float64) {
	s := c.Store
	r := wire.NewReader(buf)
	for _, j := range list {
		s.F[j][0] += r.Float()
		s.F[j][1] += r.Float()
		s.F[j][2] += r.Float()
	}
}
