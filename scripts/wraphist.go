package main

import (
	"log"
	"os"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/ansel-r/gomeso/image"
	"github.com/ansel-r/gomeso/restart"
)

// Plots the per-axis wrap-count distribution of a snapshot file.
// Particles that have drifted many box lengths from their creation
// point show up as wide tails here; a distribution pinned at zero
// usually means the image codes were reset somewhere they should not
// have been.

func counts(ws []int) (xs, ys []float64) {
	hist := map[int]int{}
	lo, hi := ws[0], ws[0]
	for _, w := range ws {
		hist[w]++
		if w < lo {
			lo = w
		}
		if w > hi {
			hi = w
		}
	}
	for w := lo; w <= hi; w++ {
		xs = append(xs, float64(w))
		ys = append(ys, float64(hist[w]))
	}
	return xs, ys
}

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("Usage: %s snapshot.gmr", os.Args[0])
	}

	_, s, err := restart.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf(err.Error())
	}
	if s.Nlocal == 0 {
		log.Fatalf("Snapshot %s holds no atoms.", os.Args[1])
	}

	wxs := make([]int, s.Nlocal)
	wys := make([]int, s.Nlocal)
	wzs := make([]int, s.Nlocal)
	for i := 0; i < s.Nlocal; i++ {
		wxs[i], wys[i], wzs[i] = image.Decode(s.Image[i])
	}

	plt.Reset()

	xs, ys := counts(wxs)
	plt.Plot(xs, ys, "or")
	xs, ys = counts(wys)
	plt.Plot(xs, ys, "og")
	xs, ys = counts(wzs)
	plt.Plot(xs, ys, "ob")

	plt.Show()
}
