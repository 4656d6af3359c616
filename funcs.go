package injectee

import "math/bits"

// Pair is the parameter block for Add. The caller owns it.
type Pair [2]int32

// Vec is the parameter block for Plus2.
type Vec struct {
	X, Y int32
}

// Echo returns x.
func Echo(x uint32) uint32 {
	return x
}

// Fibonacci returns the nth Fibonacci number using fast doubling. The result
// wraps at 32 bits.
func Fibonacci(n uint32) uint32 {
	if n == 0 {
		return 0
	}

	// (a, b) = (F(k), F(k+1)), where k is the prefix of n's bits seen so far.
	var a, b uint32 = 0, 1
	for bit := uint32(1) << (bits.Len32(n) - 1); bit != 0; bit >>= 1 {
		a, b = a*(b<<1-a), a*a+b*b

		if n&bit != 0 {
			a, b = b, a+b
		}
	}

	return a
}

// Add returns the sum of both elements of p. The result wraps.
func Add(p *Pair) uint32 {
	return uint32(p[0] + p[1])
}

// Plus2 adds 2 to both fields of v and returns v.
func Plus2(v *Vec) *Vec {
	v.X += 2
	v.Y += 2
	return v
}
