package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ansel-r/gomeso/atom"
	"github.com/ansel-r/gomeso/config"
	"github.com/ansel-r/gomeso/data"
	"github.com/ansel-r/gomeso/restart"
)

// FileGroup contains utility files for logging.
type FileGroup struct {
	log *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		if err := fg.log.Close(); err != nil {
			log.Fatalf(err.Error())
		}
	}
}

func main() {
	// The main function manages input sanitization and calls the
	// secondary main functions for each mode.

	var (
		convertStr, infoStr, dataStr string
		outStr                       string
		exampleConfig                bool
	)

	flag.StringVar(&convertStr, "Convert", "",
		"Convert a text data file into a snapshot. Takes a config file "+
			"as an argument.")
	flag.StringVar(&infoStr, "Info", "",
		"Print the header of the given snapshot file.")
	flag.StringVar(&dataStr, "Data", "",
		"Write the given snapshot file back out as a text atoms file.")
	flag.StringVar(&outStr, "Out", "atoms.data",
		"Output path for the -Data mode.")
	flag.BoolVar(&exampleConfig, "ExampleConfig", false,
		"Print an example config file for the -Convert mode.")
	flag.Parse()

	modes := 0
	for _, set := range []bool{convertStr != "", infoStr != "",
		dataStr != "", exampleConfig} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		log.Fatalf("Specify exactly one of -Convert, -Info, -Data, " +
			"-ExampleConfig.")
	}

	switch {
	case exampleConfig:
		fmt.Println(config.ExampleConvertFile)
	case convertStr != "":
		convertMain(convertStr)
	case infoStr != "":
		infoMain(infoStr)
	case dataStr != "":
		dataMain(dataStr, outStr)
	}
}

func convertMain(cfgPath string) {
	wrap, err := config.ReadConvertConfig(cfgPath)
	if err != nil {
		log.Fatalf("Error reading config file %s: %s", cfgPath, err.Error())
	}

	fg := &FileGroup{}
	defer fg.Close()
	if wrap.Convert.ValidLogFile() {
		fg.log, err = os.Create(wrap.Convert.LogFile)
		if err != nil {
			log.Fatalf(err.Error())
		}
		log.SetOutput(fg.log)
	}

	s := atom.NewStore(wrap.Atoms.Caps())
	con := &wrap.Convert

	if err := data.ReadAtoms(con.Input, s); err != nil {
		log.Fatalf(err.Error())
	}
	if con.VelocityFile != "" {
		if err := data.ReadVelocities(con.VelocityFile, s); err != nil {
			log.Fatalf(err.Error())
		}
	}
	if con.BondFile != "" {
		if err := data.ReadBonds(con.BondFile, s); err != nil {
			log.Fatalf(err.Error())
		}
	}
	if con.AngleFile != "" {
		if err := data.ReadAngles(con.AngleFile, s); err != nil {
			log.Fatalf(err.Error())
		}
	}
	if con.DihedralFile != "" {
		if err := data.ReadDihedrals(con.DihedralFile, s); err != nil {
			log.Fatalf(err.Error())
		}
	}

	dom := wrap.Domain
	hd := restart.NewHeader(s, 0,
		[3]float64{0, 0, 0},
		[3]float64{dom.XLength, dom.YLength, dom.ZLength})
	restart.WriteFile(con.Output, hd, s)

	log.Printf("Wrote %d atoms (%d bytes of arenas) to %s",
		s.Nlocal, s.MemoryUsage(), con.Output)
}

func infoMain(file string) {
	hd := &restart.Header{}
	if err := restart.ReadHeader(file, hd); err != nil {
		log.Fatalf(err.Error())
	}

	fmt.Printf("Snapshot %s\n", file)
	fmt.Printf("Atoms:    %8d\n", hd.Nlocal)
	fmt.Printf("Timestep: %8d\n", hd.Timestep)
	fmt.Printf("Types:    %8d\n", hd.Types)
	fmt.Printf("Box:      [%g %g %g] to [%g %g %g]\n",
		hd.Boxlo[0], hd.Boxlo[1], hd.Boxlo[2],
		hd.Boxhi[0], hd.Boxhi[1], hd.Boxhi[2])
	fmt.Printf("Caps:     bond %d, angle %d, dihedral %d, special %d\n",
		hd.BondPerAtom, hd.AnglePerAtom, hd.DihedralPerAtom, hd.MaxSpecial)
}

func dataMain(file, out string) {
	_, s, err := restart.ReadFile(file)
	if err != nil {
		log.Fatalf(err.Error())
	}
	if err := data.WriteAtoms(out, s); err != nil {
		log.Fatalf(err.Error())
	}
}
