package comm

import (
	"github.com/ansel-r/gomeso/image"
	"github.com/ansel-r/gomeso/wire"
)

// PackPosition packs the positions of the listed slots. pbc is nil
// when the list does not cross a periodic boundary; otherwise every
// position is translated by the boundary offset. Returns words
// written.
func (c *Comm) PackPosition(list []int, pbc *PBC, buf []float64) int {
	s := c.Store
	w := wire.NewWriter(buf)

	if pbc == nil {
		for _, j := range list {
			w.PutFloat(s.X[j][0])
			w.PutFloat(s.X[j][1])
			w.PutFloat(s.X[j][2])
		}
		return w.Len()
	}

	dx, dy, dz := c.Domain.Shift(pbc)
	for _, j := range list {
		w.PutFloat(s.X[j][0] + dx)
		w.PutFloat(s.X[j][1] + dy)
		w.PutFloat(s.X[j][2] + dz)
	}
	return w.Len()
}

// PackPositionVel packs position, velocity and the image code of the
// listed slots. Across a periodic boundary the image code is remapped
// so the replica's unwrapped coordinate matches its owner's, and under
// continuous deformation the velocity of particles in the deform group
// is corrected by the boundary's velocity offset.
func (c *Comm) PackPositionVel(list []int, pbc *PBC, buf []float64) int {
	s := c.Store
	w := wire.NewWriter(buf)

	if pbc == nil {
		for _, j := range list {
			w.PutFloat(s.X[j][0])
			w.PutFloat(s.X[j][1])
			w.PutFloat(s.X[j][2])
			w.PutFloat(s.V[j][0])
			w.PutFloat(s.V[j][1])
			w.PutFloat(s.V[j][2])
			w.PutBits(s.Image[j])
		}
		return w.Len()
	}

	dx, dy, dz := c.Domain.Shift(pbc)
	deform := c.Domain.DeformVRemap
	var dvx, dvy, dvz float64
	if deform {
		dvx, dvy, dvz = c.Domain.VelShift(pbc)
	}

	for _, j := range list {
		w.PutFloat(s.X[j][0] + dx)
		w.PutFloat(s.X[j][1] + dy)
		w.PutFloat(s.X[j][2] + dz)
		if deform && s.Mask[j]&c.Domain.DeformGroupBit != 0 {
			w.PutFloat(s.V[j][0] + dvx)
			w.PutFloat(s.V[j][1] + dvy)
			w.PutFloat(s.V[j][2] + dvz)
		} else {
			w.PutFloat(s.V[j][0])
			w.PutFloat(s.V[j][1])
			w.PutFloat(s.V[j][2])
		}
		w.PutBits(image.Remap(s.Image[j], pbc[0], pbc[1], pbc[2]))
	}
	return w.Len()
}

// UnpackPosition writes packed positions into n replica slots starting
// at first, in list order.
func (c *Comm) UnpackPosition(first, n int, buf []float64) {
	s := c.Store
	r := wire.NewReader(buf)
	for i := first; i < first+n; i++ {
		s.X[i][0] = r.Float()
		s.X[i][1] = r.Float()
		s.X[i][2] = r.Float()
	}
}

// UnpackPositionVel writes packed positions, velocities and image
// codes into n replica slots starting at first. The replica's image is
// overwritten outright: the sender's notion of the wrap count is
// authoritative, never merged.
func (c *Comm) UnpackPositionVel(first, n int, buf []float64) {
	s := c.Store
	r := wire.NewReader(buf)
	for i := first; i < first+n; i++ {
		s.X[i][0] = r.Float()
		s.X[i][1] = r.Float()
		s.X[i][2] = r.Float()
		s.V[i][0] = r.Float()
		s.V[i][1] = r.Float()
		s.V[i][2] = r.Float()
		s.Image[i] = r.Bits()
	}
}
