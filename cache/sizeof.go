package cache

import (
	"reflect"
	"time"
)

const (
	// containerOverhead approximates the fixed cost of a map, slice, or
	// struct header plus allocator slack.
	containerOverhead = 48

	// fallbackSize is charged for values that cannot be inspected
	// further (recursion bound reached, channels, funcs).
	fallbackSize = 64

	// maxSizeDepth bounds recursion into nested containers so deeply
	// nested or cyclic values cannot stall an insert.
	maxSizeDepth = 8
)

// EstimateSize returns the approximate in-memory size of a value in
// bytes. Scalars use their fixed widths, strings and byte slices their
// lengths, and containers a recursive approximate sum plus overhead.
// It never panics and never returns a negative size.
func EstimateSize(v any) int64 {
	switch val := v.(type) {
	case nil:
		return 0
	case bool, int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int, uint, int64, uint64, uintptr, float64, time.Duration:
		return 8
	case complex64:
		return 8
	case complex128:
		return 16
	case string:
		return int64(len(val))
	case []byte:
		return int64(len(val))
	case time.Time:
		return 24
	}

	visited := make(map[uintptr]bool)
	return sizeOfValue(reflect.ValueOf(v), 0, visited)
}

func sizeOfValue(rv reflect.Value, depth int, visited map[uintptr]bool) int64 {
	if !rv.IsValid() {
		return 0
	}
	if depth > maxSizeDepth {
		return fallbackSize
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64,
		reflect.Uintptr, reflect.Float64, reflect.Complex64:
		return 8
	case reflect.Complex128:
		return 16

	case reflect.String:
		return int64(rv.Len())

	case reflect.Slice:
		if rv.IsNil() {
			return 0
		}
		if visited[rv.Pointer()] {
			return containerOverhead
		}
		visited[rv.Pointer()] = true
		size := int64(containerOverhead)
		for i := 0; i < rv.Len(); i++ {
			size += sizeOfValue(rv.Index(i), depth+1, visited)
		}
		return size

	case reflect.Array:
		size := int64(containerOverhead)
		for i := 0; i < rv.Len(); i++ {
			size += sizeOfValue(rv.Index(i), depth+1, visited)
		}
		return size

	case reflect.Map:
		if rv.IsNil() {
			return 0
		}
		if visited[rv.Pointer()] {
			return containerOverhead
		}
		visited[rv.Pointer()] = true
		size := int64(containerOverhead)
		iter := rv.MapRange()
		for iter.Next() {
			size += sizeOfValue(iter.Key(), depth+1, visited)
			size += sizeOfValue(iter.Value(), depth+1, visited)
		}
		return size

	case reflect.Struct:
		size := int64(containerOverhead)
		for i := 0; i < rv.NumField(); i++ {
			size += sizeOfValue(rv.Field(i), depth+1, visited)
		}
		return size

	case reflect.Pointer:
		if rv.IsNil() {
			return 8
		}
		if visited[rv.Pointer()] {
			return 8
		}
		visited[rv.Pointer()] = true
		return 8 + sizeOfValue(rv.Elem(), depth+1, visited)

	case reflect.Interface:
		if rv.IsNil() {
			return 8
		}
		return 8 + sizeOfValue(rv.Elem(), depth+1, visited)

	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return 8

	default:
		return fallbackSize
	}
}
