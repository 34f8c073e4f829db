package image

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeInverse(t *testing.T) {
	for wx := -40; wx <= 40; wx += 5 {
		for wy := -40; wy <= 40; wy += 5 {
			for wz := -40; wz <= 40; wz += 5 {
				gx, gy, gz := Decode(Encode(wx, wy, wz))
				if gx != wx || gy != wy || gz != wz {
					t.Errorf("Decode(Encode(%d, %d, %d)) = (%d, %d, %d)",
						wx, wy, wz, gx, gy, gz)
				}
			}
		}
	}
}

func TestEncodeDecodeRangeEdges(t *testing.T) {
	edge := Max - 1
	for _, w := range [][3]int{
		{edge, 0, 0}, {0, edge, 0}, {0, 0, edge},
		{-edge, -edge, -edge}, {edge, edge, edge},
	} {
		gx, gy, gz := Decode(Encode(w[0], w[1], w[2]))
		assert.Equal(t, w, [3]int{gx, gy, gz})
	}
}

func TestZero(t *testing.T) {
	wx, wy, wz := Decode(Zero)
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{wx, wy, wz})
	assert.Equal(t, Zero, Encode(0, 0, 0))
}

func TestRemapComposes(t *testing.T) {
	rand.Seed(0)
	for n := 0; n < 1000; n++ {
		code := Encode(rand.Intn(21)-10, rand.Intn(21)-10, rand.Intn(21)-10)
		s1 := [3]int{rand.Intn(5) - 2, rand.Intn(5) - 2, rand.Intn(5) - 2}
		s2 := [3]int{rand.Intn(5) - 2, rand.Intn(5) - 2, rand.Intn(5) - 2}

		twice := Remap(Remap(code, s1[0], s1[1], s1[2]), s2[0], s2[1], s2[2])
		once := Remap(code, s1[0]+s2[0], s1[1]+s2[1], s1[2]+s2[2])
		if twice != once {
			t.Errorf("%d) Remap twice gave %d, composed shift gave %d",
				n+1, twice, once)
		}
	}
}

func TestRemapMovesOppositeShift(t *testing.T) {
	code := Encode(3, -1, 0)
	wx, wy, wz := Decode(Remap(code, 1, 0, -2))
	assert.Equal(t, [3]int{2, -1, 2}, [3]int{wx, wy, wz})
}

func BenchmarkEncode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Encode(i%100-50, i%7, i%3)
	}
}

func BenchmarkRemap(b *testing.B) {
	code := Encode(3, -1, 0)
	for i := 0; i < b.N; i++ {
		code = Remap(code, i%3-1, 0, 0)
	}
}
