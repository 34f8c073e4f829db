package atom

// Extension is the hook contract for features that attach extra
// per-particle payload to the store. The store calls every registered
// Extension, in registration order, at each structural operation, and
// the transcoders call them strictly after the fixed fields of
// whichever protocol is running.
//
// Pack/unpack methods return the number of words produced or consumed.
// The registration order must be identical on both ends of a
// transport; the protocols are not self-describing at the extension
// level and a mismatch is silent corruption, not a detected error.
type Extension interface {
	// Grow resizes the extension's own arrays to the given particle
	// capacity, preserving existing contents.
	Grow(capacity int)

	// Copy overwrites the extension record of slot j with slot i's.
	// del is true when the copy is deleting slot j's particle.
	Copy(i, j int, del bool)

	// PackBorder appends border payload for the listed slots.
	PackBorder(list []int, buf []float64) int

	// UnpackBorder consumes border payload for n replicas starting at
	// slot first.
	UnpackBorder(first, n int, buf []float64) int

	// PackExchange appends migration payload for slot i.
	PackExchange(i int, buf []float64) int

	// UnpackExchange consumes migration payload into slot i.
	UnpackExchange(i int, buf []float64) int

	// SizeRestart returns the number of snapshot words slot i needs.
	SizeRestart(i int) int

	// PackRestart appends snapshot payload for slot i.
	PackRestart(i int, buf []float64) int

	// UnpackRestart consumes snapshot payload into slot i.
	UnpackRestart(i int, buf []float64) int
}
