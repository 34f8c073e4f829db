package restart

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"unsafe"

	"github.com/ansel-r/gomeso/atom"
)

const (
	// Endianness used by default when writing snapshots. Snapshots of
	// any endianness can be read.
	DefaultEndiannessFlag int32 = -1
)

/*
The binary format used for snapshot files is as follows:
    |-- 1 --||-- 2 --||-- ... 3 ... --||-- ... 4 ... --|

    1 - (int32) Flag indicating the endianness of the file. 0 indicates
        a big endian byte ordering and -1 indicates a little endian
        byte order.
    2 - (int32) Size of a Header struct. Should be checked for
        consistency.
    3 - (restart.Header) Header containing meta-information about the
        subdomain.
    4 - ([]float64) Per-particle records, Nlocal of them, each
        self-describing via its leading word count.
*/
type Header struct {
	Nlocal   int64
	Timestep int64

	Types           int64
	BondPerAtom     int64
	AnglePerAtom    int64
	DihedralPerAtom int64
	MaxSpecial      int64

	Boxlo, Boxhi [3]float64
}

// Caps returns the store capacities a reload of this snapshot needs.
func (hd *Header) Caps() atom.Caps {
	return atom.Caps{
		Types:           int(hd.Types),
		BondPerAtom:     int(hd.BondPerAtom),
		AnglePerAtom:    int(hd.AnglePerAtom),
		DihedralPerAtom: int(hd.DihedralPerAtom),
		MaxSpecial:      int(hd.MaxSpecial),
		Workers:         1,
	}
}

// NewHeader fills a Header from a store's capacities and counts.
func NewHeader(s *atom.Store, timestep int64, boxlo, boxhi [3]float64) *Header {
	return &Header{
		Nlocal:          int64(s.Nlocal),
		Timestep:        timestep,
		Types:           int64(s.Caps.Types),
		BondPerAtom:     int64(s.Caps.BondPerAtom),
		AnglePerAtom:    int64(s.Caps.AnglePerAtom),
		DihedralPerAtom: int64(s.Caps.DihedralPerAtom),
		MaxSpecial:      int64(s.Caps.MaxSpecial),
		Boxlo:           boxlo,
		Boxhi:           boxhi,
	}
}

// readInt32 returns a single 32-bit integer from the given file using
// the given endianness.
func readInt32(r io.Reader, order binary.ByteOrder) int32 {
	var n int32
	if err := binary.Read(r, order, &n); err != nil {
		panic(err)
	}
	return n
}

// endianness is a utility function converting an endianness flag to a
// byte order.
func endianness(flag int32) binary.ByteOrder {
	if flag == 0 {
		return binary.BigEndian
	} else if flag == -1 {
		return binary.LittleEndian
	} else {
		panic("Unrecognized endianness flag.")
	}
}

// WriteFile writes a snapshot of the store's owned particles to file.
// Each record is packed through a scratch buffer sized from the
// record's exact field count, so snapshots of bonded systems never
// depend on the conservative Size accounting.
func WriteFile(file string, hd *Header, s *atom.Store) {
	if int(hd.Nlocal) != s.Nlocal {
		log.Fatalf("Header count %d for file %s does not match store count %d",
			hd.Nlocal, file, s.Nlocal)
	}

	f, err := os.Create(file)
	if err != nil {
		log.Fatalf(err.Error())
	}
	defer f.Close()

	order := endianness(DefaultEndiannessFlag)

	if err = binary.Write(f, order, DefaultEndiannessFlag); err != nil {
		log.Fatalf(err.Error())
	}
	if err = binary.Write(f, order, int32(unsafe.Sizeof(Header{}))); err != nil {
		log.Fatalf(err.Error())
	}
	if err = binary.Write(f, order, hd); err != nil {
		log.Fatalf(err.Error())
	}

	re := &Restart{Store: s}
	for i := 0; i < s.Nlocal; i++ {
		buf := make([]float64, re.RecordSize(i))
		m := re.Pack(i, buf)
		if err = binary.Write(f, order, buf[:m]); err != nil {
			log.Fatalf(err.Error())
		}
	}
}

func readHeaderAt(file string, hdBuf *Header) (*os.File, binary.ByteOrder, error) {
	f, err := os.OpenFile(file, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return nil, binary.LittleEndian, err
	}

	// order doesn't matter for this read, since flags are symmetric.
	order := endianness(readInt32(f, binary.LittleEndian))

	headerSize := readInt32(f, order)
	if headerSize != int32(unsafe.Sizeof(Header{})) {
		f.Close()
		return nil, binary.LittleEndian,
			fmt.Errorf("Expected restart.Header size of %d, found %d.",
				unsafe.Sizeof(Header{}), headerSize,
			)
	}

	if err = binary.Read(f, order, hdBuf); err != nil {
		f.Close()
		return nil, binary.LittleEndian, err
	}
	return f, order, nil
}

// ReadHeader reads only the header of the given snapshot file.
func ReadHeader(file string, hdBuf *Header) error {
	f, _, err := readHeaderAt(file, hdBuf)
	if err != nil {
		return err
	}
	return f.Close()
}

// ReadFile reloads a snapshot into a fresh store built from the file's
// own capacities. The given extensions are registered on the store in
// order; their persisted payload lands in the store's Extra spill for
// them to consume.
func ReadFile(file string, exts ...atom.Extension) (*Header, *atom.Store, error) {
	hd := &Header{}
	f, order, err := readHeaderAt(file, hd)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	s := atom.NewStore(hd.Caps(), exts...)
	if hd.Nlocal > 0 {
		s.Grow(int(hd.Nlocal))
	}
	re := &Restart{Store: s}

	var word [1]float64
	for p := int64(0); p < hd.Nlocal; p++ {
		if err := binary.Read(f, order, word[:]); err != nil {
			return nil, nil, err
		}
		total := int(word[0])
		if total < 1 {
			return nil, nil, fmt.Errorf(
				"Malformed record %d in file %s: total word count %d.",
				p, file, total,
			)
		}
		buf := make([]float64, total)
		buf[0] = word[0]
		if err := binary.Read(f, order, buf[1:]); err != nil {
			return nil, nil, err
		}
		if m := re.Unpack(buf); m != total {
			return nil, nil, fmt.Errorf(
				"Record %d in file %s declares %d words but %d were consumed.",
				p, file, total, m,
			)
		}
	}

	return hd, s, nil
}
