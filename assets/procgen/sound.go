package procgen

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// CutDuration is the length of the cut sound in seconds.
const CutDuration = 0.18

// CutSound synthesizes the slice "swish" as 16-bit little-endian stereo PCM,
// the layout audio players accept without decoding.
func CutSound(sampleRate int) []byte {
	n := int(float64(sampleRate) * CutDuration)
	out := make([]byte, n*4)
	rng := rand.New(rand.NewPCG(42, 7))

	var low float64
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		progress := float64(i) / float64(n)

		// Filtered noise whose cutoff sweeps down, plus a short falling tone.
		alpha := 0.9 - 0.7*progress
		low += alpha * (rng.Float64()*2 - 1 - low)
		tone := math.Sin(2 * math.Pi * (900 - 600*progress) * t)

		attack := math.Min(1, progress*20)
		env := attack * math.Exp(-5*progress) * (1 - progress)
		v := (0.7*low + 0.3*tone) * env * 0.8

		s := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}
