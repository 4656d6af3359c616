// Command random is a shared library exposing one process-wide random number
// generator:
//
//	go build -buildmode=c-shared -o random.dll ./cmd/random
//
// All exports share the generator, so the order of calls decides the
// sequence. Calls aren't serialized.
//
// random itself is defined in random.c. libc declares long random(void) in
// stdlib.h, which the cgo export stubs include, so the Go side is exported as
// injectee_random and the C file forwards to it.
package main

/*
#include <stdint.h>
*/
import "C"

import "github.com/pboyd/injectee"

//export seed
func seed(s C.uint32_t) {
	injectee.Seed(uint32(s))
}

// seed_random returns the seed it used.
//
//export seed_random
func seed_random() C.uint32_t {
	return C.uint32_t(injectee.SeedRandom())
}

//export injectee_random
func injectee_random(max C.uint32_t) C.uint32_t {
	return C.uint32_t(injectee.Random(uint32(max)))
}

func main() {}
