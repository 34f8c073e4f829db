package comm

import (
	"github.com/ansel-r/gomeso/wire"
)

// PackExchange writes the self-describing migration record for owned
// slot i: everything a neighbor needs to take over ownership,
// including the full topology lists and extension payload. Word 0 is
// the record's total word count, patched last so a reader can skip or
// validate records without interpreting every field. Position is the
// first field triple after the count so the receiving scheduler can
// test it against its bounds before unpacking. Returns words written.
func (c *Comm) PackExchange(i int, buf []float64) int {
	s := c.Store
	w := wire.NewWriter(buf)

	w.Skip() // total word count
	w.PutFloat(s.X[i][0])
	w.PutFloat(s.X[i][1])
	w.PutFloat(s.X[i][2])
	w.PutFloat(s.V[i][0])
	w.PutFloat(s.V[i][1])
	w.PutFloat(s.V[i][2])
	w.PutInt(s.Tag[i])
	w.PutInt(s.Type[i])
	w.PutInt(s.Mask[i])
	w.PutBits(s.Image[i])
	w.PutInt(s.Molecule[i])

	w.PutInt(s.NumBond[i])
	for k := 0; k < s.NumBond[i]; k++ {
		w.PutInt(s.BondType[s.BondIdx(i, k)])
		w.PutInt(s.BondAtom[s.BondIdx(i, k)])
		w.PutFloat(s.BondR0[s.BondIdx(i, k)])
	}

	w.PutInt(s.NumAngle[i])
	for k := 0; k < s.NumAngle[i]; k++ {
		w.PutInt(s.AngleType[s.AngleIdx(i, k)])
		w.PutInt(s.AngleAtom1[s.AngleIdx(i, k)])
		w.PutInt(s.AngleAtom2[s.AngleIdx(i, k)])
		w.PutInt(s.AngleAtom3[s.AngleIdx(i, k)])
		w.PutFloat(s.AngleA0[s.AngleIdx(i, k)])
	}

	w.PutInt(s.NumDihedral[i])
	for k := 0; k < s.NumDihedral[i]; k++ {
		w.PutInt(s.DihedralType[s.DihedralIdx(i, k)])
		w.PutInt(s.DihedralAtom1[s.DihedralIdx(i, k)])
		w.PutInt(s.DihedralAtom2[s.DihedralIdx(i, k)])
		w.PutInt(s.DihedralAtom3[s.DihedralIdx(i, k)])
		w.PutInt(s.DihedralAtom4[s.DihedralIdx(i, k)])
	}

	w.PutInt(s.NSpecial[i][0])
	w.PutInt(s.NSpecial[i][1])
	w.PutInt(s.NSpecial[i][2])
	for k := 0; k < s.NSpecial[i][2]; k++ {
		w.PutInt(s.Special[s.SpecialIdx(i, k)])
	}

	m := w.Len()
	for _, e := range s.Extensions() {
		m += e.PackExchange(i, buf[m:])
	}

	w.PatchInt(0, m)
	return m
}

// UnpackExchange appends the migrated particle in buf as a new owned
// slot, growing the store if needed, and returns the words consumed.
// Extension payload is consumed in registration order; both ends of
// the transport must register the same extensions in the same order.
func (c *Comm) UnpackExchange(buf []float64) int {
	s := c.Store
	n := s.Nlocal
	if n == s.Nmax {
		s.Grow(0)
	}

	r := wire.NewReader(buf)
	r.Int() // total word count

	s.X[n][0] = r.Float()
	s.X[n][1] = r.Float()
	s.X[n][2] = r.Float()
	s.V[n][0] = r.Float()
	s.V[n][1] = r.Float()
	s.V[n][2] = r.Float()
	s.Tag[n] = r.Int()
	s.Type[n] = r.Int()
	s.Mask[n] = r.Int()
	s.Image[n] = r.Bits()
	s.Molecule[n] = r.Int()

	s.NumBond[n] = r.Int()
	for k := 0; k < s.NumBond[n]; k++ {
		s.BondType[s.BondIdx(n, k)] = r.Int()
		s.BondAtom[s.BondIdx(n, k)] = r.Int()
		s.BondR0[s.BondIdx(n, k)] = r.Float()
	}

	s.NumAngle[n] = r.Int()
	for k := 0; k < s.NumAngle[n]; k++ {
		s.AngleType[s.AngleIdx(n, k)] = r.Int()
		s.AngleAtom1[s.AngleIdx(n, k)] = r.Int()
		s.AngleAtom2[s.AngleIdx(n, k)] = r.Int()
		s.AngleAtom3[s.AngleIdx(n, k)] = r.Int()
		s.AngleA0[s.AngleIdx(n, k)] = r.Float()
	}

	s.NumDihedral[n] = r.Int()
	for k := 0; k < s.NumDihedral[n]; k++ {
		s.DihedralType[s.DihedralIdx(n, k)] = r.Int()
		s.DihedralAtom1[s.DihedralIdx(n, k)] = r.Int()
		s.DihedralAtom2[s.DihedralIdx(n, k)] = r.Int()
		s.DihedralAtom3[s.DihedralIdx(n, k)] = r.Int()
		s.DihedralAtom4[s.DihedralIdx(n, k)] = r.Int()
	}

	s.NSpecial[n][0] = r.Int()
	s.NSpecial[n][1] = r.Int()
	s.NSpecial[n][2] = r.Int()
	for k := 0; k < s.NSpecial[n][2]; k++ {
		s.Special[s.SpecialIdx(n, k)] = r.Int()
	}

	m := r.Len()
	for _, e := range s.Extensions() {
		m += e.UnpackExchange(n, buf[m:])
	}

	s.Nlocal++
	return m
}
