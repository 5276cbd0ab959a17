package gen

// Simplex is seeded 2D simplex noise. Values lie in [-1, 1] and are a pure
// function of the seed and the sample coordinates, so a Simplex may be shared
// by any number of goroutines.
type Simplex struct {
	perm [512]uint8
}

// Gradient directions used by the 2D lattice corners.
var grad2 = [12][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

const (
	skew2   = 0.36602540378443864676 // (sqrt(3) - 1) / 2
	unskew2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
)

// NewSimplex builds the permutation table for seed.
func NewSimplex(seed int64) *Simplex {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	// Fisher-Yates driven by a 64-bit LCG.
	s := uint64(seed)
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s >> 33) % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}

	n := &Simplex{}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

// Noise2D samples the noise field at (x, y).
func (n *Simplex) Noise2D(x, y float64) float64 {
	s := (x + y) * skew2
	i := floor(x + s)
	j := floor(y + s)

	t := float64(i+j) * unskew2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	// Upper or lower triangle of the skewed cell.
	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	corners := [3][2]float64{
		{x0, y0},
		{x0 - float64(i1) + unskew2, y0 - float64(j1) + unskew2},
		{x0 - 1 + 2*unskew2, y0 - 1 + 2*unskew2},
	}
	ii, jj := i&255, j&255
	grads := [3]int{
		int(n.perm[ii+int(n.perm[jj])]) % 12,
		int(n.perm[ii+i1+int(n.perm[jj+j1])]) % 12,
		int(n.perm[ii+1+int(n.perm[jj+1])]) % 12,
	}

	var sum float64
	for k, c := range corners {
		falloff := 0.5 - c[0]*c[0] - c[1]*c[1]
		if falloff < 0 {
			continue
		}
		falloff *= falloff
		g := grad2[grads[k]]
		sum += falloff * falloff * (g[0]*c[0] + g[1]*c[1])
	}
	return 70 * sum
}

// Octave2D layers octaves of Noise2D, doubling frequency and scaling the
// amplitude by persistence each step. The result is normalised to [-1, 1].
func (n *Simplex) Octave2D(x, y float64, octaves int, persistence float64) float64 {
	var total, norm float64
	freq, amp := 1.0, 1.0
	for range octaves {
		total += n.Noise2D(x*freq, y*freq) * amp
		norm += amp
		amp *= persistence
		freq *= 2
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}

func floor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
