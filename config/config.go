/*package config reads gomeso run configuration files. The format is
the gcfg INI dialect; every section has an example string that the
main binary can print.
*/
package config

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/ansel-r/gomeso/atom"
	"github.com/ansel-r/gomeso/comm"
)

const (
	ExampleConvertFile = `[Domain]

#######################
# Required Parameters #
#######################

# Box edge lengths.
XLength = 20
YLength = 20
ZLength = 20

#######################
# Optional Parameters #
#######################

# Tilt factors for triclinic boxes. Leaving all three unset keeps the
# box orthogonal.
# XY = 0
# XZ = 0
# YZ = 0

# Box deformation rates, in the order the communication offsets use
# them. Setting any of these turns on velocity remapping for replicas
# built across a periodic boundary.
# ShearRateX  = 0
# ShearRateY  = 0
# ShearRateZ  = 0
# ShearRateYZ = 0
# ShearRateXZ = 0
# ShearRateXY = 0

# Group bit selecting which particles take the shear velocity
# correction. Defaults to every particle.
# DeformGroupBit = 1

[Atoms]

#######################
# Required Parameters #
#######################

# Number of particle types. Types in data files run 1..Types.
Types = 2

#######################
# Optional Parameters #
#######################

# Per-particle topology capacities. Rows in the bond/angle/dihedral
# files beyond these capacities abort the run; they are never
# silently dropped.
# BondPerAtom = 6
# AnglePerAtom = 12
# DihedralPerAtom = 12
# MaxSpecial = 24

# Force accumulator copies per particle, one per cooperating worker.
# Workers = 1

[Convert]

#######################
# Required Parameters #
#######################

# Atoms section file: tag molecule type x y z [ix iy iz]
Input = path/to/atoms.data
# Snapshot file to write.
Output = path/to/out.gmr

#######################
# Optional Parameters #
#######################

# Extra data file sections.
# VelocityFile = path/to/velocities.data
# BondFile     = path/to/bonds.data
# AngleFile    = path/to/angles.data
# DihedralFile = path/to/dihedrals.data

# LogFile = log.out`
)

type DomainConfig struct {
	// Required
	XLength, YLength, ZLength float64

	// Optional
	XY, XZ, YZ float64

	ShearRateX, ShearRateY, ShearRateZ    float64
	ShearRateYZ, ShearRateXZ, ShearRateXY float64
	DeformGroupBit                        int
}

func (con *DomainConfig) ValidXLength() bool { return con.XLength > 0 }
func (con *DomainConfig) ValidYLength() bool { return con.YLength > 0 }
func (con *DomainConfig) ValidZLength() bool { return con.ZLength > 0 }

// Triclinic reports whether any tilt factor is set.
func (con *DomainConfig) Triclinic() bool {
	return con.XY != 0 || con.XZ != 0 || con.YZ != 0
}

// Deforming reports whether any shear rate is set.
func (con *DomainConfig) Deforming() bool {
	return con.ShearRateX != 0 || con.ShearRateY != 0 ||
		con.ShearRateZ != 0 || con.ShearRateYZ != 0 ||
		con.ShearRateXZ != 0 || con.ShearRateXY != 0
}

// Domain builds the communication geometry this configuration
// describes.
func (con *DomainConfig) Domain() *comm.Domain {
	return &comm.Domain{
		Xprd: con.XLength, Yprd: con.YLength, Zprd: con.ZLength,
		XY: con.XY, XZ: con.XZ, YZ: con.YZ,
		Triclinic: con.Triclinic(),
		HRate: [6]float64{
			con.ShearRateX, con.ShearRateY, con.ShearRateZ,
			con.ShearRateYZ, con.ShearRateXZ, con.ShearRateXY,
		},
		DeformVRemap:   con.Deforming(),
		DeformGroupBit: con.DeformGroupBit,
	}
}

type AtomsConfig struct {
	// Required
	Types int

	// Optional
	BondPerAtom, AnglePerAtom, DihedralPerAtom int
	MaxSpecial                                 int
	Workers                                    int
}

func (con *AtomsConfig) ValidTypes() bool           { return con.Types > 0 }
func (con *AtomsConfig) ValidBondPerAtom() bool     { return con.BondPerAtom >= 0 }
func (con *AtomsConfig) ValidAnglePerAtom() bool    { return con.AnglePerAtom >= 0 }
func (con *AtomsConfig) ValidDihedralPerAtom() bool { return con.DihedralPerAtom >= 0 }
func (con *AtomsConfig) ValidMaxSpecial() bool      { return con.MaxSpecial >= 0 }
func (con *AtomsConfig) ValidWorkers() bool         { return con.Workers > 0 }

// Caps builds the store capacities this configuration describes.
func (con *AtomsConfig) Caps() atom.Caps {
	return atom.Caps{
		Types:           con.Types,
		BondPerAtom:     con.BondPerAtom,
		AnglePerAtom:    con.AnglePerAtom,
		DihedralPerAtom: con.DihedralPerAtom,
		MaxSpecial:      con.MaxSpecial,
		Workers:         con.Workers,
	}
}

type ConvertConfig struct {
	// Required
	Input, Output string

	// Optional
	VelocityFile, BondFile, AngleFile, DihedralFile string
	LogFile                                         string
}

func (con *ConvertConfig) ValidInput() bool   { return con.Input != "" }
func (con *ConvertConfig) ValidOutput() bool  { return con.Output != "" }
func (con *ConvertConfig) ValidLogFile() bool { return con.LogFile != "" }

type ConvertWrapper struct {
	Domain  DomainConfig
	Atoms   AtomsConfig
	Convert ConvertConfig
}

func DefaultConvertWrapper() *ConvertWrapper {
	wrap := &ConvertWrapper{}
	wrap.Atoms.Workers = 1
	wrap.Domain.DeformGroupBit = 1
	return wrap
}

// Check validates the required fields of every section, naming the
// first offending field.
func (wrap *ConvertWrapper) Check() error {
	switch {
	case !wrap.Domain.ValidXLength():
		return fmt.Errorf("Domain.XLength must be positive, but is %g.",
			wrap.Domain.XLength)
	case !wrap.Domain.ValidYLength():
		return fmt.Errorf("Domain.YLength must be positive, but is %g.",
			wrap.Domain.YLength)
	case !wrap.Domain.ValidZLength():
		return fmt.Errorf("Domain.ZLength must be positive, but is %g.",
			wrap.Domain.ZLength)
	case !wrap.Atoms.ValidTypes():
		return fmt.Errorf("Atoms.Types must be positive, but is %d.",
			wrap.Atoms.Types)
	case !wrap.Atoms.ValidBondPerAtom():
		return fmt.Errorf("Atoms.BondPerAtom must be non-negative, but is %d.",
			wrap.Atoms.BondPerAtom)
	case !wrap.Atoms.ValidAnglePerAtom():
		return fmt.Errorf("Atoms.AnglePerAtom must be non-negative, but is %d.",
			wrap.Atoms.AnglePerAtom)
	case !wrap.Atoms.ValidDihedralPerAtom():
		return fmt.Errorf("Atoms.DihedralPerAtom must be non-negative, but is %d.",
			wrap.Atoms.DihedralPerAtom)
	case !wrap.Atoms.ValidMaxSpecial():
		return fmt.Errorf("Atoms.MaxSpecial must be non-negative, but is %d.",
			wrap.Atoms.MaxSpecial)
	case !wrap.Atoms.ValidWorkers():
		return fmt.Errorf("Atoms.Workers must be positive, but is %d.",
			wrap.Atoms.Workers)
	case !wrap.Convert.ValidInput():
		return fmt.Errorf("Convert.Input must be set.")
	case !wrap.Convert.ValidOutput():
		return fmt.Errorf("Convert.Output must be set.")
	}
	return nil
}

// ReadConvertConfig reads and validates a convert configuration file.
func ReadConvertConfig(fname string) (*ConvertWrapper, error) {
	wrap := DefaultConvertWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Check(); err != nil {
		return nil, err
	}
	return wrap, nil
}
