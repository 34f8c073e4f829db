/*package comm transcodes particle state between the atom store and
the flat word buffers moved by the decomposition scheduler.

Four protocols share the buffer convention: per-step position sync
(forward), per-step force accumulation (reverse), replica creation
(border), and ownership migration (exchange). The scheduler owns the
transport and the buffers; this package only fills and reads them.
*/
package comm

import (
	"github.com/ansel-r/gomeso/atom"
)

// PBC is the periodic shift a communication list crosses. Components
// 0..2 are whole-box shifts along x, y, z. Components 3..5 are the
// yz, xz, xy tilt multiples used by triclinic boxes.
type PBC [6]int

// Domain describes the subdomain's box geometry and any continuous
// deformation it is under. Supplied by the decomposition scheduler.
type Domain struct {
	Xprd, Yprd, Zprd float64 // box edge lengths
	XY, XZ, YZ       float64 // tilt factors
	Triclinic        bool

	// HRate is the box deformation rate in the order x, y, z, yz,
	// xz, xy. Under continuous shear, replicas built across a
	// periodic boundary need their velocity corrected by the rate
	// times the shift.
	HRate        [6]float64
	DeformVRemap bool
	// DeformGroupBit selects which particles take the velocity
	// correction; particles outside the deforming group keep their
	// velocity untouched.
	DeformGroupBit int
}

// Shift returns the coordinate offset for a forward communication
// crossing pbc boundaries.
func (d *Domain) Shift(pbc *PBC) (dx, dy, dz float64) {
	if d.Triclinic {
		dx = float64(pbc[0])*d.Xprd + float64(pbc[5])*d.XY + float64(pbc[4])*d.XZ
		dy = float64(pbc[1])*d.Yprd + float64(pbc[3])*d.YZ
		dz = float64(pbc[2]) * d.Zprd
	} else {
		dx = float64(pbc[0]) * d.Xprd
		dy = float64(pbc[1]) * d.Yprd
		dz = float64(pbc[2]) * d.Zprd
	}
	return dx, dy, dz
}

// BorderShift returns the coordinate offset for a border pack.
// Triclinic border lists are built in reduced coordinates, so the pbc
// components are already the displacement there.
func (d *Domain) BorderShift(pbc *PBC) (dx, dy, dz float64) {
	if d.Triclinic {
		return float64(pbc[0]), float64(pbc[1]), float64(pbc[2])
	}
	return d.Shift(pbc)
}

// VelShift returns the velocity correction for deforming boxes.
func (d *Domain) VelShift(pbc *PBC) (dvx, dvy, dvz float64) {
	dvx = float64(pbc[0])*d.HRate[0] + float64(pbc[5])*d.HRate[5] +
		float64(pbc[4])*d.HRate[4]
	dvy = float64(pbc[1])*d.HRate[1] + float64(pbc[3])*d.HRate[3]
	dvz = float64(pbc[2]) * d.HRate[2]
	return dvx, dvy, dvz
}

// Comm binds a store to its domain geometry. One Comm per subdomain;
// all methods are plain transcoding calls driven by the scheduler,
// one worker at a time.
type Comm struct {
	Store  *atom.Store
	Domain *Domain
}
