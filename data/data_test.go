package data

import (
	"io/ioutil"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/ansel-r/gomeso/atom"
	"github.com/ansel-r/gomeso/image"
)

func testCaps() atom.Caps {
	return atom.Caps{
		Types:           2,
		BondPerAtom:     4,
		AnglePerAtom:    4,
		DihedralPerAtom: 2,
		MaxSpecial:      6,
		Workers:         1,
	}
}

func writeFile(t *testing.T, dir, name, text string) string {
	fname := path.Join(dir, name)
	if err := ioutil.WriteFile(fname, []byte(text), 0644); err != nil {
		t.Fatalf(err.Error())
	}
	return fname
}

func TestReadAtoms(t *testing.T) {
	dir, err := ioutil.TempDir("", "gomeso_data_test")
	if err != nil {
		t.Fatalf(err.Error())
	}
	defer os.RemoveAll(dir)

	fname := writeFile(t, dir, "atoms.data", `# comment row

1 1 1 0.5 1.5 2.5
2 1 2 3.5 4.5 5.5 -1 0 2
`)

	s := atom.NewStore(testCaps())
	if err := ReadAtoms(fname, s); err != nil {
		t.Fatalf(err.Error())
	}

	if s.Nlocal != 2 {
		t.Fatalf("Ingested %d atoms, expected 2", s.Nlocal)
	}
	if s.Tag[0] != 1 || s.Type[0] != 1 || s.Molecule[0] != 1 {
		t.Errorf("Row 1 gave tag %d type %d mol %d",
			s.Tag[0], s.Type[0], s.Molecule[0])
	}
	if s.X[1] != (atom.Vec{3.5, 4.5, 5.5}) {
		t.Errorf("Row 2 gave position %v", s.X[1])
	}
	if s.Image[0] != image.Zero {
		t.Errorf("Six-column row gave image %d, expected the zero code",
			s.Image[0])
	}
	wx, wy, wz := image.Decode(s.Image[1])
	if wx != -1 || wy != 0 || wz != 2 {
		t.Errorf("Nine-column row gave image (%d, %d, %d), expected (-1, 0, 2)",
			wx, wy, wz)
	}
}

func TestReadAtomsRejectsBadRows(t *testing.T) {
	dir, err := ioutil.TempDir("", "gomeso_data_test")
	if err != nil {
		t.Fatalf(err.Error())
	}
	defer os.RemoveAll(dir)

	table := []struct {
		name, text, want string
	}{
		{"zero tag", "0 1 1 0 0 0\n", "must be positive"},
		{"negative tag", "-4 1 1 0 0 0\n", "must be positive"},
		{"duplicate tag", "1 1 1 0 0 0\n1 1 1 1 1 1\n", "appears twice"},
		{"zero type", "1 1 0 0 0 0\n", "atom type"},
		{"type too big", "1 1 3 0 0 0\n", "atom type"},
		{"wrong columns", "1 1 1 0 0\n", "columns"},
		{"non-numeric", "1 1 one 0 0 0\n", "not a number"},
	}

	for i, line := range table {
		fname := writeFile(t, dir, "bad.data", line.text)
		s := atom.NewStore(testCaps())
		err := ReadAtoms(fname, s)
		if err == nil {
			t.Errorf("%d) %s row was accepted", i+1, line.name)
		} else if !strings.Contains(err.Error(), line.want) {
			t.Errorf("%d) %s row gave %q, expected mention of %q",
				i+1, line.name, err.Error(), line.want)
		}
	}
}

func ingested(t *testing.T, dir string) *atom.Store {
	fname := writeFile(t, dir, "atoms.data", `1 1 1 0 0 0
2 1 1 1 0 0
3 1 2 2 0 0
`)
	s := atom.NewStore(testCaps())
	if err := ReadAtoms(fname, s); err != nil {
		t.Fatalf(err.Error())
	}
	return s
}

func TestReadVelocities(t *testing.T) {
	dir, err := ioutil.TempDir("", "gomeso_data_test")
	if err != nil {
		t.Fatalf(err.Error())
	}
	defer os.RemoveAll(dir)
	s := ingested(t, dir)

	fname := writeFile(t, dir, "vel.data", `2 0.5 -0.5 0.25
1 1 2 3
`)
	if err := ReadVelocities(fname, s); err != nil {
		t.Fatalf(err.Error())
	}
	if s.V[1] != (atom.Vec{0.5, -0.5, 0.25}) {
		t.Errorf("Atom 2 velocity %v", s.V[1])
	}
	if s.V[0] != (atom.Vec{1, 2, 3}) {
		t.Errorf("Atom 1 velocity %v", s.V[0])
	}

	bad := writeFile(t, dir, "badvel.data", "9 0 0 0\n")
	if err := ReadVelocities(bad, s); err == nil {
		t.Errorf("Velocity row with unknown atom ID was accepted")
	}
}

func TestReadTopology(t *testing.T) {
	dir, err := ioutil.TempDir("", "gomeso_data_test")
	if err != nil {
		t.Fatalf(err.Error())
	}
	defer os.RemoveAll(dir)
	s := ingested(t, dir)

	bonds := writeFile(t, dir, "bonds.data", `1 1 2 1.5
2 2 3 2.5
`)
	if err := ReadBonds(bonds, s); err != nil {
		t.Fatalf(err.Error())
	}
	if s.NumBond[0] != 1 || s.NumBond[1] != 1 {
		t.Fatalf("Bond counts %d, %d", s.NumBond[0], s.NumBond[1])
	}
	if s.BondAtom[s.BondIdx(0, 0)] != 2 || s.BondR0[s.BondIdx(0, 0)] != 1.5 {
		t.Errorf("Bond 1 attached as partner %d r0 %g",
			s.BondAtom[s.BondIdx(0, 0)], s.BondR0[s.BondIdx(0, 0)])
	}

	angles := writeFile(t, dir, "angles.data", "1 1 2 3 1.9\n")
	if err := ReadAngles(angles, s); err != nil {
		t.Fatalf(err.Error())
	}
	// Angles hang off their center atom.
	if s.NumAngle[1] != 1 || s.NumAngle[0] != 0 {
		t.Fatalf("Angle counts %d, %d", s.NumAngle[0], s.NumAngle[1])
	}
	if s.AngleA0[s.AngleIdx(1, 0)] != 1.9 {
		t.Errorf("Angle equilibrium %g", s.AngleA0[s.AngleIdx(1, 0)])
	}

	dihedrals := writeFile(t, dir, "dihedrals.data", "1 1 2 3 1\n")
	if err := ReadDihedrals(dihedrals, s); err != nil {
		t.Fatalf(err.Error())
	}
	if s.NumDihedral[1] != 1 {
		t.Fatalf("Dihedral count %d", s.NumDihedral[1])
	}
	if s.DihedralAtom4[s.DihedralIdx(1, 0)] != 1 {
		t.Errorf("Dihedral atom4 %d", s.DihedralAtom4[s.DihedralIdx(1, 0)])
	}
}

func TestWriteAtomsRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "gomeso_data_test")
	if err != nil {
		t.Fatalf(err.Error())
	}
	defer os.RemoveAll(dir)

	s := atom.NewStore(testCaps())
	s.Create(2, atom.Vec{0.125, -3.5, 1e10})
	s.Tag[0] = 9
	s.Molecule[0] = 2
	s.Image[0] = image.Encode(4, -1, 0)

	fname := path.Join(dir, "out.data")
	if err := WriteAtoms(fname, s); err != nil {
		t.Fatalf(err.Error())
	}

	s2 := atom.NewStore(testCaps())
	if err := ReadAtoms(fname, s2); err != nil {
		t.Fatalf(err.Error())
	}

	if s2.Nlocal != 1 {
		t.Fatalf("Round trip gave %d atoms, expected 1", s2.Nlocal)
	}
	if s2.Tag[0] != 9 || s2.Molecule[0] != 2 || s2.Type[0] != 2 {
		t.Errorf("Round trip gave tag %d mol %d type %d",
			s2.Tag[0], s2.Molecule[0], s2.Type[0])
	}
	if s2.X[0] != s.X[0] {
		t.Errorf("Round trip gave position %v, expected %v", s2.X[0], s.X[0])
	}
	if s2.Image[0] != s.Image[0] {
		t.Errorf("Round trip gave image %d, expected %d",
			s2.Image[0], s.Image[0])
	}
}
