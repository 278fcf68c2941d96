// Package avffi is the cgo binding to the parts of libavformat, libavcodec
// and libavutil used by ffav.
//
// Every native handle is owned by a Go value with an idempotent Free (or
// Close); errors returned by FFmpeg are translated into Error values that
// work with errors.Is.
//
// The headers and libraries are located through pkg-config. The FFmpeg
// release series is chosen with a build tag (see package profile); each
// profile refuses to compile against headers of another series, and
// CheckLinkedVersion verifies the library loaded at runtime.
package avffi

// #cgo pkg-config: libavformat libavcodec libavutil
import "C"
