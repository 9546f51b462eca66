// Package rawmem
// Author: momentics <momentics@gmail.com>
//
// Byte-level block allocators behind the api.Allocator contract.
// Heap serves blocks out of the Go heap and pins them against collection;
// Mmap (Linux) serves anonymous mappings outside the Go heap for
// pointer-free payloads. Both hand out raw base pointers and rely on the
// caller to pair every Free and Reallocate with the block's exact size.
package rawmem
