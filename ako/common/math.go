package common

// CeilHalf returns ceil(n/2), the "divide plus one" rule applied to every
// halved dimension.
func CeilHalf(n int) int {
	return (n + 1) >> 1
}

// CeilDiv returns ceil(a/b) for positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

