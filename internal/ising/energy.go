package ising

// NeighborSum returns the sum of the four periodic neighbours of (i, j):
// up (i-1, j), down (i+1, j), left (i, j-1) and right (i, j+1).
func NeighborSum(l *Lattice, i, j int) int {
	return int(l.At(i-1, j)) + int(l.At(i+1, j)) + int(l.At(i, j-1)) + int(l.At(i, j+1))
}

// PositionalEnergy returns the row-major N×N matrix of periodic neighbour
// sums. On a 1×1 lattice every neighbour is the cell itself, so the single
// entry is 4·s.
func PositionalEnergy(l *Lattice) []float64 {
	n := l.Size()
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i*n+j] = float64(NeighborSum(l, i, j))
		}
	}
	return out
}

// TotalEnergy is -J times the sum of PositionalEnergy. Every spin is counted
// once per neighbour, so the value equals -4·J·ΣS; analyses built on this
// scale depend on it staying that way.
func TotalEnergy(l *Lattice, coupling float64) float64 {
	sum := 0.0
	for _, v := range PositionalEnergy(l) {
		sum += v
	}
	return -coupling * sum
}

// BondEnergy is the nearest-neighbour Hamiltonian -J·Σ<ij> s_i·s_j with each
// bond counted once. Accepted DeltaE values sum to changes in this quantity.
func BondEnergy(l *Lattice, coupling float64) float64 {
	n := l.Size()
	sum := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += int(l.At(i, j)) * NeighborSum(l, i, j)
		}
	}
	return -coupling * float64(sum) / 2
}

// DeltaE is the energy change from flipping the spin at (i, j):
// 2·J·s(i,j)·(sum of the four periodic neighbours).
func DeltaE(l *Lattice, i, j int, coupling float64) float64 {
	return 2 * coupling * float64(l.At(i, j)) * float64(NeighborSum(l, i, j))
}

// Magnetization returns the average spin ΣS/N².
func Magnetization(l *Lattice) float64 {
	n := l.Size()
	return float64(l.Sum()) / float64(n*n)
}
