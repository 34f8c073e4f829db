/*package image packs the three signed periodic wrap counters of a
particle into a single int64.

Each axis gets a 21-bit field with a bias of Max, so the stored field
is always non-negative. The code accumulates the net number of boundary
crossings since the particle was created; it is what lets an unwrapped
trajectory be reconstructed from wrapped coordinates, so it is never
reset opportunistically.
*/
package image

const (
	// Bits is the field width of one axis.
	Bits = 21
	// Bits2 is the shift of the z field.
	Bits2 = 2 * Bits
	// Mask selects one axis field.
	Mask = (1 << Bits) - 1
	// Max is the bias added to each wrap counter before packing.
	Max = 1 << (Bits - 1)

	// Zero encodes "no crossings on any axis". New particles start here.
	Zero = (int64(Max) << Bits2) | (int64(Max) << Bits) | int64(Max)
)

// Encode packs three per-axis wrap counters into one code. Counters
// outside (-Max, Max) alias silently; physical step sizes keep callers
// many orders of magnitude away from that.
func Encode(wx, wy, wz int) int64 {
	return (int64(wz+Max)&Mask)<<Bits2 |
		(int64(wy+Max)&Mask)<<Bits |
		int64(wx+Max)&Mask
}

// Decode unpacks a code into its three wrap counters. It is the exact
// inverse of Encode over the representable range.
func Decode(code int64) (wx, wy, wz int) {
	wx = int(code&Mask) - Max
	wy = int((code>>Bits)&Mask) - Max
	wz = int((code>>Bits2)&Mask) - Max
	return wx, wy, wz
}

// Remap shifts a code by -s per axis. When a replica is produced
// across a periodic boundary its raw coordinate is translated by
// s box lengths, so its wrap count must move the opposite way for
// unwrap(owner) == unwrap(replica) to keep holding.
func Remap(code int64, sx, sy, sz int) int64 {
	wx, wy, wz := Decode(code)
	return Encode(wx-sx, wy-sy, wz-sz)
}
