/*package data ingests and emits the whitespace-separated text form of
a subdomain's particles.

An atoms file has one particle per row:

    tag molecule_id type x y z [image_x image_y image_z]

The trailing image triple is optional and defaults to zero net
crossings. Velocity and topology sections live in their own files with
fixed column counts.
*/
package data

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phil-mansfield/table"

	"github.com/ansel-r/gomeso/atom"
	"github.com/ansel-r/gomeso/image"
)

// ReadAtoms reads an atoms file into the store as new owned particles.
// Tags must be positive and unique within the run, types must be in
// [1, Types]; any violation aborts the ingestion with the offending
// field named.
func ReadAtoms(fname string, s *atom.Store) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	seen := map[int]bool{}
	line := 0

	scan := bufio.NewScanner(f)
	for scan.Scan() {
		line++
		text := strings.TrimSpace(scan.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 6 && len(fields) != 9 {
			return fmt.Errorf(
				"Line %d of %s has %d columns, expected 6 or 9.",
				line, fname, len(fields),
			)
		}

		vals := make([]float64, len(fields))
		for k, field := range fields {
			vals[k], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return fmt.Errorf(
					"Line %d of %s: column %d is not a number: %q.",
					line, fname, k+1, field,
				)
			}
		}

		tag, mol, typ := int(vals[0]), int(vals[1]), int(vals[2])
		if tag <= 0 {
			return fmt.Errorf(
				"Line %d of %s: atom ID must be positive, but is %d.",
				line, fname, tag,
			)
		}
		if seen[tag] {
			return fmt.Errorf(
				"Line %d of %s: atom ID %d appears twice.", line, fname, tag,
			)
		}
		seen[tag] = true
		if typ <= 0 || typ > s.Caps.Types {
			return fmt.Errorf(
				"Line %d of %s: atom type must be in [1, %d], but is %d.",
				line, fname, s.Caps.Types, typ,
			)
		}

		n := s.Nlocal
		s.Create(typ, atom.Vec{vals[3], vals[4], vals[5]})
		s.Tag[n] = tag
		s.Molecule[n] = mol
		if len(fields) == 9 {
			s.Image[n] = image.Encode(int(vals[6]), int(vals[7]), int(vals[8]))
		}
	}
	return scan.Err()
}

// tagSlots maps every owned tag to its slot.
func tagSlots(s *atom.Store) map[int]int {
	slots := make(map[int]int, s.Nlocal)
	for i := 0; i < s.Nlocal; i++ {
		slots[s.Tag[i]] = i
	}
	return slots
}

// ReadVelocities reads a velocities file, rows of `tag vx vy vz`, into
// already-ingested particles. An unknown tag is an error.
func ReadVelocities(fname string, s *atom.Store) error {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return err
	}

	slots := tagSlots(s)
	tags, vxs, vys, vzs := cols[0], cols[1], cols[2], cols[3]
	for r := range tags {
		i, ok := slots[int(tags[r])]
		if !ok {
			return fmt.Errorf(
				"Row %d of %s names atom ID %d, which does not exist.",
				r+1, fname, int(tags[r]),
			)
		}
		s.V[i] = atom.Vec{vxs[r], vys[r], vzs[r]}
	}
	return nil
}

// ReadBonds reads a bonds file, rows of `type atom1 atom2 r0`. Each
// bond is attached to atom1's slot; exceeding the per-particle bond
// capacity aborts the run.
func ReadBonds(fname string, s *atom.Store) error {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return err
	}

	slots := tagSlots(s)
	types, a1s, a2s, r0s := cols[0], cols[1], cols[2], cols[3]
	for r := range types {
		i, ok := slots[int(a1s[r])]
		if !ok {
			return fmt.Errorf(
				"Row %d of %s names atom ID %d, which does not exist.",
				r+1, fname, int(a1s[r]),
			)
		}
		s.AddBond(i, int(types[r]), int(a2s[r]), r0s[r])
	}
	return nil
}

// ReadAngles reads an angles file, rows of `type atom1 atom2 atom3 a0`.
// Each angle is attached to its center atom, atom2.
func ReadAngles(fname string, s *atom.Store) error {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3, 4}, nil)
	if err != nil {
		return err
	}

	slots := tagSlots(s)
	types, a1s, a2s, a3s, a0s := cols[0], cols[1], cols[2], cols[3], cols[4]
	for r := range types {
		i, ok := slots[int(a2s[r])]
		if !ok {
			return fmt.Errorf(
				"Row %d of %s names atom ID %d, which does not exist.",
				r+1, fname, int(a2s[r]),
			)
		}
		s.AddAngle(i, int(types[r]), int(a1s[r]), int(a2s[r]), int(a3s[r]), a0s[r])
	}
	return nil
}

// ReadDihedrals reads a dihedrals file, rows of
// `type atom1 atom2 atom3 atom4`. Each dihedral is attached to atom2.
func ReadDihedrals(fname string, s *atom.Store) error {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3, 4}, nil)
	if err != nil {
		return err
	}

	slots := tagSlots(s)
	types, a1s, a2s, a3s, a4s := cols[0], cols[1], cols[2], cols[3], cols[4]
	for r := range types {
		i, ok := slots[int(a2s[r])]
		if !ok {
			return fmt.Errorf(
				"Row %d of %s names atom ID %d, which does not exist.",
				r+1, fname, int(a2s[r]),
			)
		}
		s.AddDihedral(i, int(types[r]), int(a1s[r]), int(a2s[r]),
			int(a3s[r]), int(a4s[r]))
	}
	return nil
}

// WriteAtoms writes the store's owned particles as an atoms file with
// the full nine-column row, image flags decoded into their three
// signed counters.
func WriteAtoms(fname string, s *atom.Store) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < s.Nlocal; i++ {
		wx, wy, wz := image.Decode(s.Image[i])
		fmt.Fprintf(w, "%d %d %d %-1.16e %-1.16e %-1.16e %d %d %d\n",
			s.Tag[i], s.Molecule[i], s.Type[i],
			s.X[i][0], s.X[i][1], s.X[i][2],
			wx, wy, wz)
	}
	return w.Flush()
}
