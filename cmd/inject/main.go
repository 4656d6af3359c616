// Command inject is a shared library of functions meant to be started in
// another process with CreateRemoteThread:
//
//	go build -buildmode=c-shared -o inject.dll ./cmd/inject
//
// Every export takes one register-sized argument and returns its result in
// the return register, which becomes the remote thread's exit code. Blocks
// passed to add and plus2 belong to the caller.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pboyd/injectee"
)

//export echo
func echo(x C.uint32_t) C.uint32_t {
	return C.uint32_t(injectee.Echo(uint32(x)))
}

//export fibonacci
func fibonacci(n C.uint32_t) C.uint32_t {
	return C.uint32_t(injectee.Fibonacci(uint32(n)))
}

// add expects two packed int32s.
//
//export add
func add(p unsafe.Pointer) C.uint32_t {
	return C.uint32_t(injectee.Add((*injectee.Pair)(p)))
}

// plus2 modifies the block in place and returns the same pointer.
//
//export plus2
func plus2(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(injectee.Plus2((*injectee.Vec)(p)))
}

func main() {}
