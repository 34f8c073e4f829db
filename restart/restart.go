/*package restart serializes one subdomain's owned particles to a
persistent snapshot and reloads them.

Per-particle records use the same self-describing framing as migration
(word 0 is the record's own total word count) but a restart-specific
layout: topology type fields are written as absolute values, and
special-neighbor counts are not persisted at all — they are rebuilt
from scratch by the topology pass after a reload.
*/
package restart

import (
	"github.com/ansel-r/gomeso/atom"
	"github.com/ansel-r/gomeso/wire"
)

// Restart transcodes a store's owned particles to snapshot records.
type Restart struct {
	Store *atom.Store
}

// Size returns the word count a snapshot of every owned particle
// needs, charged as a fixed per-particle overhead plus two words per
// bond, five per angle, five per dihedral, plus extension
// contributions. Callers pre-size persistent write buffers with it.
func (re *Restart) Size() int {
	s := re.Store
	n := 0
	for i := 0; i < s.Nlocal; i++ {
		n += 15 + 2*s.NumBond[i] + 5*s.NumAngle[i] + 5*s.NumDihedral[i]
	}
	for _, e := range s.Extensions() {
		for i := 0; i < s.Nlocal; i++ {
			n += e.SizeRestart(i)
		}
	}
	return n
}

// RecordSize returns the exact word count Pack produces for slot i.
func (re *Restart) RecordSize(i int) int {
	s := re.Store
	n := 15 + 3*s.NumBond[i] + 5*s.NumAngle[i] + 5*s.NumDihedral[i]
	for _, e := range s.Extensions() {
		n += e.SizeRestart(i)
	}
	return n
}

// Pack writes the snapshot record of owned slot i. Topology types may
// be negative at runtime (a bond/angle/dihedral spanning a periodic
// image); the sign belongs to the runtime topology build, not to
// persisted state, so it is written as positive. Returns words
// written, also patched into word 0.
func (re *Restart) Pack(i int, buf []float64) int {
	s := re.Store
	w := wire.NewWriter(buf)

	w.Skip() // total word count
	w.PutFloat(s.X[i][0])
	w.PutFloat(s.X[i][1])
	w.PutFloat(s.X[i][2])
	w.PutInt(s.Tag[i])
	w.PutInt(s.Type[i])
	w.PutInt(s.Mask[i])
	w.PutBits(s.Image[i])
	w.PutFloat(s.V[i][0])
	w.PutFloat(s.V[i][1])
	w.PutFloat(s.V[i][2])
	w.PutInt(s.Molecule[i])

	w.PutInt(s.NumBond[i])
	for k := 0; k < s.NumBond[i]; k++ {
		w.PutInt(abs(s.BondType[s.BondIdx(i, k)]))
		w.PutInt(s.BondAtom[s.BondIdx(i, k)])
		w.PutFloat(s.BondR0[s.BondIdx(i, k)])
	}

	w.PutInt(s.NumAngle[i])
	for k := 0; k < s.NumAngle[i]; k++ {
		w.PutInt(abs(s.AngleType[s.AngleIdx(i, k)]))
		w.PutInt(s.AngleAtom1[s.AngleIdx(i, k)])
		w.PutInt(s.AngleAtom2[s.AngleIdx(i, k)])
		w.PutInt(s.AngleAtom3[s.AngleIdx(i, k)])
		w.PutFloat(s.AngleA0[s.AngleIdx(i, k)])
	}

	w.PutInt(s.NumDihedral[i])
	for k := 0; k < s.NumDihedral[i]; k++ {
		w.PutInt(abs(s.DihedralType[s.DihedralIdx(i, k)]))
		w.PutInt(s.DihedralAtom1[s.DihedralIdx(i, k)])
		w.PutInt(s.DihedralAtom2[s.DihedralIdx(i, k)])
		w.PutInt(s.DihedralAtom3[s.DihedralIdx(i, k)])
		w.PutInt(s.DihedralAtom4[s.DihedralIdx(i, k)])
	}

	m := w.Len()
	for _, e := range s.Extensions() {
		m += e.PackRestart(i, buf[m:])
	}

	w.PatchInt(0, m)
	return m
}

// Unpack appends the snapshot record in buf as a new owned slot and
// returns the words consumed from the fixed and topology fields.
// Special-neighbor counts are zeroed; leftover words beyond the fixed
// and topology fields are routed verbatim into the store's per-particle
// extension spill, which is grown to fit if the caller did not
// pre-size it.
func (re *Restart) Unpack(buf []float64) int {
	s := re.Store
	n := s.Nlocal
	if n == s.Nmax {
		s.Grow(0)
	}

	r := wire.NewReader(buf)
	total := r.Int()

	s.X[n][0] = r.Float()
	s.X[n][1] = r.Float()
	s.X[n][2] = r.Float()
	s.Tag[n] = r.Int()
	s.Type[n] = r.Int()
	s.Mask[n] = r.Int()
	s.Image[n] = r.Bits()
	s.V[n][0] = r.Float()
	s.V[n][1] = r.Float()
	s.V[n][2] = r.Float()
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

	s.NSpecial[n] = [3]int{}

	m := r.Len()
	if spill := total - m; spill > 0 {
		if s.ExtraWidth < spill {
			s.GrowExtra(spill)
		}
		for k := 0; k < spill; k++ {
			s.Extra[n][k] = buf[m]
			m++
		}
	}

	s.Nlocal++
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
