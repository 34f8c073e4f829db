/*package atom owns the per-particle state of one subdomain.

The store is a structure of arrays: one growable arena per field,
particles addressed only by slot index. Slots [0, Nlocal) are owned
particles, stable until explicitly compacted. Slots [Nlocal,
Nlocal+Nghost) are replicas rebuilt from scratch every border-exchange
cycle; nothing may assume a replica slot survives that cycle.

Variable-length fields (bonded topology, special neighbors) live in
flat arenas with a fixed per-particle stride, so growing never leaves
a stale view behind: the store owns every arena and re-slices them all
inside Grow.
*/
package atom

import (
	"fmt"
	"math"

	"github.com/ansel-r/gomeso/image"
)

// Delta is how many slots Grow(0) adds.
const Delta = 10000

// Vec is a three dimensional vector.
type Vec [3]float64

// Caps fixes the per-store capacities every arena is strided by.
type Caps struct {
	Types int // particle types run 1..Types

	BondPerAtom     int
	AnglePerAtom    int
	DihedralPerAtom int
	MaxSpecial      int

	// Workers is how many force accumulator copies exist per slot.
	// Cooperating workers each write their own copy; an external
	// reduction folds them into copy 0 before force communication.
	Workers int
}

// Store holds one subdomain's owned and replica particles.
type Store struct {
	Caps Caps

	Nlocal int // owned particles
	Nghost int // replicas, rebuilt every border exchange
	Nmax   int // slot capacity of every arena

	Tag      []int // global id, 0 = not yet assigned
	Type     []int
	Mask     []int // group bitmask
	Molecule []int // owning molecule, 0 = none
	Image    []int64

	X []Vec
	V []Vec
	F []Vec // Nmax*Workers; slot i, worker w at i + w*Nmax

	NumBond  []int
	BondType []int // stride BondPerAtom
	BondAtom []int
	BondR0   []float64

	NumAngle   []int
	AngleType  []int // stride AnglePerAtom
	AngleAtom1 []int
	AngleAtom2 []int
	AngleAtom3 []int
	AngleA0    []float64

	NumDihedral   []int
	DihedralType  []int // stride DihedralPerAtom
	DihedralAtom1 []int
	DihedralAtom2 []int
	DihedralAtom3 []int
	DihedralAtom4 []int

	// NSpecial[i] counts 1-2, 1-3, 1-4 bonded-exclusion neighbors;
	// the third count is the total occupancy of the Special slice.
	NSpecial [][3]int
	Special  []int // stride MaxSpecial

	// Extra receives leftover snapshot words per particle when a
	// reload carries extension payload. Sized by GrowExtra.
	Extra      [][]float64
	ExtraWidth int

	exts []Extension
}

// NewStore creates an empty store with the given capacities and
// registered extensions. Extension order is fixed at construction and
// must match the peer subdomains'.
func NewStore(caps Caps, exts ...Extension) *Store {
	if caps.Workers < 1 {
		caps.Workers = 1
	}
	s := &Store{Caps: caps, exts: exts}
	return s
}

// Ntotal returns the number of live slots, owned plus replicas.
func (s *Store) Ntotal() int { return s.Nlocal + s.Nghost }

// Extensions returns the registered extensions in registration order.
func (s *Store) Extensions() []Extension { return s.exts }

// Index helpers into the strided arenas.

func (s *Store) BondIdx(i, k int) int     { return i*s.Caps.BondPerAtom + k }
func (s *Store) AngleIdx(i, k int) int    { return i*s.Caps.AnglePerAtom + k }
func (s *Store) DihedralIdx(i, k int) int { return i*s.Caps.DihedralPerAtom + k }
func (s *Store) SpecialIdx(i, k int) int  { return i*s.Caps.MaxSpecial + k }

func growInts(a []int, n int) []int {
	b := make([]int, n)
	copy(b, a)
	return b
}

func growFloats(a []float64, n int) []float64 {
	b := make([]float64, n)
	copy(b, a)
	return b
}

func growVecs(a []Vec, n int) []Vec {
	b := make([]Vec, n)
	copy(b, a)
	return b
}

// Grow resizes every arena. n == 0 grows the capacity by Delta; n > 0
// sets the capacity to exactly n. Existing slots are preserved at
// their indices. Panics if the new capacity leaves the small-integer
// range, since the arenas would no longer be indexable consistently.
func (s *Store) Grow(n int) {
	if n == 0 {
		s.Nmax += Delta
	} else {
		s.Nmax = n
	}
	if s.Nmax < 0 || s.Nmax > math.MaxInt32 {
		panic(fmt.Sprintf("Per-rank system is too big: %d slots", s.Nmax))
	}
	n = s.Nmax

	s.Tag = growInts(s.Tag, n)
	s.Type = growInts(s.Type, n)
	s.Mask = growInts(s.Mask, n)
	s.Molecule = growInts(s.Molecule, n)

	im := make([]int64, n)
	copy(im, s.Image)
	s.Image = im

	s.X = growVecs(s.X, n)
	s.V = growVecs(s.V, n)
	s.F = growVecs(s.F, n*s.Caps.Workers)

	s.NumBond = growInts(s.NumBond, n)
	s.BondType = growInts(s.BondType, n*s.Caps.BondPerAtom)
	s.BondAtom = growInts(s.BondAtom, n*s.Caps.BondPerAtom)
	s.BondR0 = growFloats(s.BondR0, n*s.Caps.BondPerAtom)

	s.NumAngle = growInts(s.NumAngle, n)
	s.AngleType = growInts(s.AngleType, n*s.Caps.AnglePerAtom)
	s.AngleAtom1 = growInts(s.AngleAtom1, n*s.Caps.AnglePerAtom)
	s.AngleAtom2 = growInts(s.AngleAtom2, n*s.Caps.AnglePerAtom)
	s.AngleAtom3 = growInts(s.AngleAtom3, n*s.Caps.AnglePerAtom)
	s.AngleA0 = growFloats(s.AngleA0, n*s.Caps.AnglePerAtom)

	s.NumDihedral = growInts(s.NumDihedral, n)
	s.DihedralType = growInts(s.DihedralType, n*s.Caps.DihedralPerAtom)
	s.DihedralAtom1 = growInts(s.DihedralAtom1, n*s.Caps.DihedralPerAtom)
	s.DihedralAtom2 = growInts(s.DihedralAtom2, n*s.Caps.DihedralPerAtom)
	s.DihedralAtom3 = growInts(s.DihedralAtom3, n*s.Caps.DihedralPerAtom)
	s.DihedralAtom4 = growInts(s.DihedralAtom4, n*s.Caps.DihedralPerAtom)

	ns := make([][3]int, n)
	copy(ns, s.NSpecial)
	s.NSpecial = ns
	s.Special = growInts(s.Special, n*s.Caps.MaxSpecial)

	if s.ExtraWidth > 0 {
		s.growExtraRows()
	}

	for _, e := range s.exts {
		e.Grow(n)
	}
}

// GrowExtra sizes the per-particle extension spill store to width
// words per slot. Called before a snapshot reload that carries
// extension payload.
func (s *Store) GrowExtra(width int) {
	s.ExtraWidth = width
	s.growExtraRows()
}

func (s *Store) growExtraRows() {
	ex := make([][]float64, s.Nmax)
	copy(ex, s.Extra)
	for i := range ex {
		if len(ex[i]) < s.ExtraWidth {
			row := make([]float64, s.ExtraWidth)
			copy(row, ex[i])
			ex[i] = row
		}
	}
	s.Extra = ex
}

// Copy overwrites slot j with slot i's full record: scalars, vectors,
// exactly-count topology entries, the special slice, and every
// extension's record. del is true when the copy is deleting slot j's
// particle (compaction).
func (s *Store) Copy(i, j int, del bool) {
	s.Tag[j] = s.Tag[i]
	s.Type[j] = s.Type[i]
	s.Mask[j] = s.Mask[i]
	s.Image[j] = s.Image[i]
	s.Molecule[j] = s.Molecule[i]
	s.X[j] = s.X[i]
	s.V[j] = s.V[i]

	s.NumBond[j] = s.NumBond[i]
	for k := 0; k < s.NumBond[j]; k++ {
		s.BondType[s.BondIdx(j, k)] = s.BondType[s.BondIdx(i, k)]
		s.BondAtom[s.BondIdx(j, k)] = s.BondAtom[s.BondIdx(i, k)]
		s.BondR0[s.BondIdx(j, k)] = s.BondR0[s.BondIdx(i, k)]
	}

	s.NumAngle[j] = s.NumAngle[i]
	for k := 0; k < s.NumAngle[j]; k++ {
		s.AngleType[s.AngleIdx(j, k)] = s.AngleType[s.AngleIdx(i, k)]
		s.AngleAtom1[s.AngleIdx(j, k)] = s.AngleAtom1[s.AngleIdx(i, k)]
		s.AngleAtom2[s.AngleIdx(j, k)] = s.AngleAtom2[s.AngleIdx(i, k)]
		s.AngleAtom3[s.AngleIdx(j, k)] = s.AngleAtom3[s.AngleIdx(i, k)]
		s.AngleA0[s.AngleIdx(j, k)] = s.AngleA0[s.AngleIdx(i, k)]
	}

	s.NumDihedral[j] = s.NumDihedral[i]
	for k := 0; k < s.NumDihedral[j]; k++ {
		s.DihedralType[s.DihedralIdx(j, k)] = s.DihedralType[s.DihedralIdx(i, k)]
		s.DihedralAtom1[s.DihedralIdx(j, k)] = s.DihedralAtom1[s.DihedralIdx(i, k)]
		s.DihedralAtom2[s.DihedralIdx(j, k)] = s.DihedralAtom2[s.DihedralIdx(i, k)]
		s.DihedralAtom3[s.DihedralIdx(j, k)] = s.DihedralAtom3[s.DihedralIdx(i, k)]
		s.DihedralAtom4[s.DihedralIdx(j, k)] = s.DihedralAtom4[s.DihedralIdx(i, k)]
	}

	s.NSpecial[j] = s.NSpecial[i]
	for k := 0; k < s.NSpecial[j][2]; k++ {
		s.Special[s.SpecialIdx(j, k)] = s.Special[s.SpecialIdx(i, k)]
	}

	for _, e := range s.exts {
		e.Copy(i, j, del)
	}
}

// Create appends a new owned particle of the given type at coord.
// The tag is 0 until the caller assigns a global one; velocity is
// zero, topology empty, image "no crossings".
func (s *Store) Create(typ int, coord Vec) {
	n := s.Nlocal
	if n == s.Nmax {
		s.Grow(0)
	}

	s.Tag[n] = 0
	s.Type[n] = typ
	s.X[n] = coord
	s.Mask[n] = 1
	s.Image[n] = image.Zero
	s.V[n] = Vec{}

	s.Molecule[n] = 0
	s.NumBond[n] = 0
	s.NumAngle[n] = 0
	s.NumDihedral[n] = 0
	s.NSpecial[n] = [3]int{}

	s.Nlocal++
}

// DeleteLocal removes owned slot i by copying the last owned slot into
// the hole and decrementing the owned count. Slot order is otherwise
// unchanged; replica slots are untouched.
func (s *Store) DeleteLocal(i int) {
	s.Copy(s.Nlocal-1, i, true)
	s.Nlocal--
}

// AddBond appends a bond to slot i. Exceeding BondPerAtom is a fatal
// configuration error, never a silent truncation.
func (s *Store) AddBond(i, typ, partner int, r0 float64) {
	k := s.NumBond[i]
	if k >= s.Caps.BondPerAtom {
		panic(fmt.Sprintf(
			"Atom %d has more bonds than BondPerAtom = %d",
			s.Tag[i], s.Caps.BondPerAtom,
		))
	}
	s.BondType[s.BondIdx(i, k)] = typ
	s.BondAtom[s.BondIdx(i, k)] = partner
	s.BondR0[s.BondIdx(i, k)] = r0
	s.NumBond[i]++
}

// AddAngle appends an angle to slot i.
func (s *Store) AddAngle(i, typ, a1, a2, a3 int, a0 float64) {
	k := s.NumAngle[i]
	if k >= s.Caps.AnglePerAtom {
		panic(fmt.Sprintf(
			"Atom %d has more angles than AnglePerAtom = %d",
			s.Tag[i], s.Caps.AnglePerAtom,
		))
	}
	s.AngleType[s.AngleIdx(i, k)] = typ
	s.AngleAtom1[s.AngleIdx(i, k)] = a1
	s.AngleAtom2[s.AngleIdx(i, k)] = a2
	s.AngleAtom3[s.AngleIdx(i, k)] = a3
	s.AngleA0[s.AngleIdx(i, k)] = a0
	s.NumAngle[i]++
}

// AddDihedral appends a dihedral to slot i.
func (s *Store) AddDihedral(i, typ, a1, a2, a3, a4 int) {
	k := s.NumDihedral[i]
	if k >= s.Caps.DihedralPerAtom {
		panic(fmt.Sprintf(
			"Atom %d has more dihedrals than DihedralPerAtom = %d",
			s.Tag[i], s.Caps.DihedralPerAtom,
		))
	}
	s.DihedralType[s.DihedralIdx(i, k)] = typ
	s.DihedralAtom1[s.DihedralIdx(i, k)] = a1
	s.DihedralAtom2[s.DihedralIdx(i, k)] = a2
	s.DihedralAtom3[s.DihedralIdx(i, k)] = a3
	s.DihedralAtom4[s.DihedralIdx(i, k)] = a4
	s.NumDihedral[i]++
}

// MemoryUsage returns the number of bytes held by the store's arenas.
func (s *Store) MemoryUsage() int64 {
	const word = 8
	var b int64

	ints := len(s.Tag) + len(s.Type) + len(s.Mask) + len(s.Molecule) +
		len(s.NumBond) + len(s.BondType) + len(s.BondAtom) +
		len(s.NumAngle) + len(s.AngleType) + len(s.AngleAtom1) +
		len(s.AngleAtom2) + len(s.AngleAtom3) +
		len(s.NumDihedral) + len(s.DihedralType) + len(s.DihedralAtom1) +
		len(s.DihedralAtom2) + len(s.DihedralAtom3) + len(s.DihedralAtom4) +
		len(s.Special) + 3*len(s.NSpecial)
	b += int64(ints) * word

	b += int64(len(s.Image)) * word
	b += int64(len(s.BondR0)+len(s.AngleA0)) * word
	b += int64(3*(len(s.X)+len(s.V)+len(s.F))) * word
	for i := range s.Extra {
		b += int64(len(s.Extra[i])) * word
	}

	return b
}
