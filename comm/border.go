package comm

import (
	"github.com/ansel-r/gomeso/image"
	"github.com/ansel-r/gomeso/wire"
)

// PackBorder packs the fields a neighbor needs to materialize replicas
// of the listed slots: offset-adjusted position, tag, type, mask,
// molecule, and the offset-remapped image code. Extension border
// payload follows the fixed fields. Returns words written.
func (c *Comm) PackBorder(list []int, pbc *PBC, buf []float64) int {
	s := c.Store
	w := wire.NewWriter(buf)

	var dx, dy, dz float64
	remap := pbc != nil
	if remap {
		dx, dy, dz = c.Domain.BorderShift(pbc)
	}

	for _, j := range list {
		w.PutFloat(s.X[j][0] + dx)
		w.PutFloat(s.X[j][1] + dy)
		w.PutFloat(s.X[j][2] + dz)
		w.PutInt(s.Tag[j])
		w.PutInt(s.Type[j])
		w.PutInt(s.Mask[j])
		w.PutInt(s.Molecule[j])
		if remap {
			w.PutBits(image.Remap(s.Image[j], pbc[0], pbc[1], pbc[2]))
		} else {
			w.PutBits(s.Image[j])
		}
	}

	m := w.Len()
	for _, e := range s.Extensions() {
		m += e.PackBorder(list, buf[m:])
	}
	return m
}

// PackBorderVel packs border fields plus velocity. The deform-group
// velocity correction applies exactly as in PackPositionVel.
func (c *Comm) PackBorderVel(list []int, pbc *PBC, buf []float64) int {
	s := c.Store
	w := wire.NewWriter(buf)

	var dx, dy, dz, dvx, dvy, dvz float64
	remap := pbc != nil
	deform := false
	if remap {
		dx, dy, dz = c.Domain.BorderShift(pbc)
		deform = c.Domain.DeformVRemap
		if deform {
			dvx, dvy, dvz = c.Domain.VelShift(pbc)
		}
	}

	for _, j := range list {
		w.PutFloat(s.X[j][0] + dx)
		w.PutFloat(s.X[j][1] + dy)
		w.PutFloat(s.X[j][2] + dz)
		w.PutInt(s.Tag[j])
		w.PutInt(s.Type[j])
		w.PutInt(s.Mask[j])
		w.PutInt(s.Molecule[j])
		if deform && s.Mask[j]&c.Domain.DeformGroupBit != 0 {
			w.PutFloat(s.V[j][0] + dvx)
			w.PutFloat(s.V[j][1] + dvy)
			w.PutFloat(s.V[j][2] + dvz)
		} else {
			w.PutFloat(s.V[j][0])
			w.PutFloat(s.V[j][1])
			w.PutFloat(s.V[j][2])
		}
		if remap {
			w.PutBits(image.Remap(s.Image[j], pbc[0], pbc[1], pbc[2]))
		} else {
			w.PutBits(s.Image[j])
		}
	}

	m := w.Len()
	for _, e := range s.Extensions() {
		m += e.PackBorder(list, buf[m:])
	}
	return m
}

// UnpackBorder appends n replicas starting at slot first, growing the
// store when first reaches capacity. The caller advances Nghost and,
// when several particle kinds share one buffer, advances the buffer by
// the returned word count.
func (c *Comm) UnpackBorder(first, n int, buf []float64) int {
	s := c.Store
	r := wire.NewReader(buf)
	for i := first; i < first+n; i++ {
		if i == s.Nmax {
			s.Grow(0)
		}
		s.X[i][0] = r.Float()
		s.X[i][1] = r.Float()
		s.X[i][2] = r.Float()
		s.Tag[i] = r.Int()
		s.Type[i] = r.Int()
		s.Mask[i] = r.Int()
		s.Molecule[i] = r.Int()
		s.Image[i] = r.Bits()
	}

	m := r.Len()
	for _, e := range s.Extensions() {
		m += e.UnpackBorder(first, n, buf[m:])
	}
	return m
}

// UnpackBorderVel is UnpackBorder for buffers packed with velocity.
func (c *Comm) UnpackBorderVel(first, n int, buf []float64) int {
	s := c.Store
	r := wire.NewReader(buf)
	for i := first; i < first+n; i++ {
		if i == s.Nmax {
			s.Grow(0)
		}
		s.X[i][0] = r.Float()
		s.X[i][1] = r.Float()
		s.X[i][2] = r.Float()
		s.Tag[i] = r.Int()
		s.Type[i] = r.Int()
		s.Mask[i] = r.Int()
		s.Molecule[i] = r.Int()
		s.V[i][0] = r.Float()
		s.V[i][1] = r.Float()
		s.V[i][2] = r.Float()
		s.Image[i] = r.Bits()
	}

	m := r.Len()
	for _, e := range s.Extensions() {
		m += e.UnpackBorder(first, n, buf[m:])
	}
	return m
}

// PackBorderHybrid packs only the columns this style adds on top of a
// base style when the two share one border buffer: the molecule id.
func (c *Comm) PackBorderHybrid(list []int, buf []float64) int {
	s := c.Store
	w := wire.NewWriter(buf)
	for _, j := range list {
		w.PutInt(s.Molecule[j])
	}
	return w.Len()
}

// UnpackBorderHybrid consumes the hybrid molecule column for n
// replicas starting at first.
func (c *Comm) UnpackBorderHybrid(first, n int, buf []float64) int {
	s := c.Store
	r := wire.NewReader(buf)
	for i := first; i < first+n; i++ {
		s.Molecule[i] = r.Int()
	}
	return r.Len()
}
