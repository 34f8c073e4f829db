package atom

import (
	"testing"

	"github.com/ansel-r/gomeso/image"
)

func testCaps() Caps {
	return Caps{
		Types:           3,
		BondPerAtom:     4,
		AnglePerAtom:    4,
		DihedralPerAtom: 2,
		MaxSpecial:      6,
		Workers:         2,
	}
}

// fillStore populates a store with n particles carrying distinct
// values in every field.
func fillStore(s *Store, n int) {
	for i := 0; i < n; i++ {
		s.Create(1+i%s.Caps.Types, Vec{float64(i), float64(i) + 0.5, -float64(i)})
		s.Tag[i] = i + 1
		s.Molecule[i] = i % 2
		s.Mask[i] = 1 << uint(i%4)
		s.Image[i] = image.Encode(i%3-1, 0, i%2)
		s.V[i] = Vec{0.1 * float64(i), 0, -0.1 * float64(i)}

		s.AddBond(i, 1, i+2, 1.5)
		if i%2 == 0 {
			s.AddBond(i, 2, i+3, 2.5)
			s.AddAngle(i, 1, i, i+1, i+2, 1.9)
		}
		if i%3 == 0 {
			s.AddDihedral(i, 1, i, i+1, i+2, i+3)
		}

		s.NSpecial[i] = [3]int{1, 2, 3}
		for k := 0; k < 3; k++ {
			s.Special[s.SpecialIdx(i, k)] = 100*i + k
		}
	}
}

// record snapshots one slot's full contents for comparison.
type record struct {
	tag, typ, mask, mol int
	img                 int64
	x, v                Vec
	nb, na, nd          int
	bt, ba              []int
	br0                 []float64
	at, a1, a2, a3      []int
	aa0                 []float64
	dt, d1, d2, d3, d4  []int
	ns                  [3]int
	sp                  []int
}

func snapshot(s *Store, i int) record {
	r := record{
		tag: s.Tag[i], typ: s.Type[i], mask: s.Mask[i], mol: s.Molecule[i],
		img: s.Image[i], x: s.X[i], v: s.V[i],
		nb: s.NumBond[i], na: s.NumAngle[i], nd: s.NumDihedral[i],
		ns: s.NSpecial[i],
	}
	for k := 0; k < r.nb; k++ {
		r.bt = append(r.bt, s.BondType[s.BondIdx(i, k)])
		r.ba = append(r.ba, s.BondAtom[s.BondIdx(i, k)])
		r.br0 = append(r.br0, s.BondR0[s.BondIdx(i, k)])
	}
	for k := 0; k < r.na; k++ {
		r.at = append(r.at, s.AngleType[s.AngleIdx(i, k)])
		r.a1 = append(r.a1, s.AngleAtom1[s.AngleIdx(i, k)])
		r.a2 = append(r.a2, s.AngleAtom2[s.AngleIdx(i, k)])
		r.a3 = append(r.a3, s.AngleAtom3[s.AngleIdx(i, k)])
		r.aa0 = append(r.aa0, s.AngleA0[s.AngleIdx(i, k)])
	}
	for k := 0; k < r.nd; k++ {
		r.dt = append(r.dt, s.DihedralType[s.DihedralIdx(i, k)])
		r.d1 = append(r.d1, s.DihedralAtom1[s.DihedralIdx(i, k)])
		r.d2 = append(r.d2, s.DihedralAtom2[s.DihedralIdx(i, k)])
		r.d3 = append(r.d3, s.DihedralAtom3[s.DihedralIdx(i, k)])
		r.d4 = append(r.d4, s.DihedralAtom4[s.DihedralIdx(i, k)])
	}
	for k := 0; k < r.ns[2]; k++ {
		r.sp = append(r.sp, s.Special[s.SpecialIdx(i, k)])
	}
	return r
}

func recordsEqual(a, b record) bool {
	if a.tag != b.tag || a.typ != b.typ || a.mask != b.mask ||
		a.mol != b.mol || a.img != b.img || a.x != b.x || a.v != b.v ||
		a.nb != b.nb || a.na != b.na || a.nd != b.nd || a.ns != b.ns {
		return false
	}
	intsEq := func(x, y []int) bool {
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	}
	floatsEq := func(x, y []float64) bool {
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	}
	return intsEq(a.bt, b.bt) && intsEq(a.ba, b.ba) && floatsEq(a.br0, b.br0) &&
		intsEq(a.at, b.at) && intsEq(a.a1, b.a1) && intsEq(a.a2, b.a2) &&
		intsEq(a.a3, b.a3) && floatsEq(a.aa0, b.aa0) &&
		intsEq(a.dt, b.dt) && intsEq(a.d1, b.d1) && intsEq(a.d2, b.d2) &&
		intsEq(a.d3, b.d3) && intsEq(a.d4, b.d4) && intsEq(a.sp, b.sp)
}

func TestCreateDefaults(t *testing.T) {
	s := NewStore(testCaps())
	s.Create(2, Vec{1, 2, 3})

	if s.Nlocal != 1 {
		t.Fatalf("Nlocal = %d after one Create", s.Nlocal)
	}
	if s.Tag[0] != 0 {
		t.Errorf("New particle has tag %d, expected 0", s.Tag[0])
	}
	if s.Type[0] != 2 {
		t.Errorf("New particle has type %d, expected 2", s.Type[0])
	}
	if s.Mask[0] != 1 {
		t.Errorf("New particle has mask %d, expected 1", s.Mask[0])
	}
	if s.Image[0] != image.Zero {
		t.Errorf("New particle has image %d, expected the zero code",
			s.Image[0])
	}
	if s.V[0] != (Vec{}) {
		t.Errorf("New particle has velocity %v, expected zero", s.V[0])
	}
	if s.NumBond[0] != 0 || s.NumAngle[0] != 0 || s.NumDihedral[0] != 0 {
		t.Errorf("New particle has nonempty topology")
	}
}

func TestGrowPreservesData(t *testing.T) {
	s := NewStore(testCaps())
	s.Grow(8)
	fillStore(s, 8)

	before := make([]record, 8)
	for i := range before {
		before[i] = snapshot(s, i)
	}
	capBefore := s.Nmax

	s.Grow(0)

	if s.Nmax <= capBefore {
		t.Errorf("Grow(0) went from capacity %d to %d", capBefore, s.Nmax)
	}
	if len(s.F) != s.Nmax*s.Caps.Workers {
		t.Errorf("Force arena has %d slots, expected %d",
			len(s.F), s.Nmax*s.Caps.Workers)
	}
	for i := range before {
		if !recordsEqual(before[i], snapshot(s, i)) {
			t.Errorf("Slot %d changed across Grow(0)", i)
		}
	}
}

func TestGrowExact(t *testing.T) {
	s := NewStore(testCaps())
	s.Grow(100)
	if s.Nmax != 100 {
		t.Errorf("Grow(100) set capacity %d", s.Nmax)
	}
	if len(s.BondType) != 100*s.Caps.BondPerAtom {
		t.Errorf("Bond arena has %d entries, expected %d",
			len(s.BondType), 100*s.Caps.BondPerAtom)
	}
}

func TestGrowOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Grow past the small-integer range did not panic")
		}
	}()
	s := NewStore(testCaps())
	s.Grow(1 << 40)
}

func TestCopyExactCounts(t *testing.T) {
	s := NewStore(testCaps())
	s.Grow(8)
	fillStore(s, 4)

	want := snapshot(s, 0)
	s.Copy(0, 3, false)
	if !recordsEqual(want, snapshot(s, 3)) {
		t.Errorf("Copy(0, 3) did not reproduce slot 0's record")
	}
}

func TestDeleteLocalCompacts(t *testing.T) {
	s := NewStore(testCaps())
	s.Grow(8)
	fillStore(s, 5)

	last := snapshot(s, 4)
	s.DeleteLocal(1)

	if s.Nlocal != 4 {
		t.Fatalf("Nlocal = %d after delete, expected 4", s.Nlocal)
	}
	if !recordsEqual(last, snapshot(s, 1)) {
		t.Errorf("Slot 1 does not hold the former last slot's record")
	}
	for i := 0; i < s.Nlocal; i++ {
		if s.Tag[i] == 2 {
			t.Errorf("Deleted tag 2 still present at slot %d", i)
		}
	}
}

func TestAddBondCapacityFatal(t *testing.T) {
	s := NewStore(testCaps())
	s.Grow(4)
	s.Create(1, Vec{})

	for k := 0; k < s.Caps.BondPerAtom; k++ {
		s.AddBond(0, 1, k+2, 1.0)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("Bond append past BondPerAtom did not panic")
		}
	}()
	s.AddBond(0, 1, 99, 1.0)
}

func TestCreateGrowsFromEmpty(t *testing.T) {
	s := NewStore(testCaps())
	s.Create(1, Vec{1, 1, 1})
	if s.Nmax != Delta {
		t.Errorf("First Create grew capacity to %d, expected %d",
			s.Nmax, Delta)
	}
}

func TestMemoryUsage(t *testing.T) {
	s := NewStore(testCaps())
	if s.MemoryUsage() != 0 {
		t.Errorf("Empty store reports %d bytes", s.MemoryUsage())
	}
	s.Grow(16)
	if s.MemoryUsage() <= 0 {
		t.Errorf("Grown store reports %d bytes", s.MemoryUsage())
	}
}

func BenchmarkCopy(b *testing.B) {
	s := NewStore(testCaps())
	s.Grow(64)
	fillStore(s, 2)
	for i := 0; i < b.N; i++ {
		s.Copy(0, 1, false)
	}
}
