// File: alloc/shape.go
// Package alloc: element type shape detection.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package alloc

import (
	"reflect"
	"sync"
)

var shapeCache sync.Map // reflect.Type -> bool

// hasPointers reports whether values of T contain pointers the collector
// must scan. The answer decides which backing store a block of T lives in.
func hasPointers[T any]() bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := shapeCache.Load(t); ok {
		return v.(bool)
	}
	hp := typeHasPointers(t)
	shapeCache.Store(t, hp)
	return hp
}

func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointers, slices, maps, channels, strings, funcs, interfaces.
		return true
	}
}
