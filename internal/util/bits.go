package util

import (
	"math"

	"github.com/go-sif/preduce"
)

// ToBits returns the fixed-width bit pattern of a Number, widened to 64 bits
func ToBits[N preduce.Number](v N) uint64 {
	switch x := any(v).(type) {
	case int:
		return uint64(x)
	case int32:
		return uint64(uint32(x))
	case int64:
		return uint64(x)
	case uint:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case float32:
		return uint64(math.Float32bits(x))
	case float64:
		return math.Float64bits(x)
	}
	panic("unreachable: unsupported Number type")
}

// FromBits is the inverse of ToBits
func FromBits[N preduce.Number](b uint64) N {
	var zero N
	switch any(zero).(type) {
	case int:
		return any(int(b)).(N)
	case int32:
		return any(int32(uint32(b))).(N)
	case int64:
		return any(int64(b)).(N)
	case uint:
		return any(uint(b)).(N)
	case uint32:
		return any(uint32(b)).(N)
	case uint64:
		return any(b).(N)
	case float32:
		return any(math.Float32frombits(uint32(b))).(N)
	case float64:
		return any(math.Float64frombits(b)).(N)
	}
	panic("unreachable: unsupported Number type")
}
