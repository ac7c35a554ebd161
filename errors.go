package texcache

import "strconv"

import "github.com/jmgilman/go/errors"

// Returned by [Cache.Load]() when the cache has been configured
// with zero capacity and no slot can ever be acquired.
var ErrNoCapacity = errors.New(errors.CodeInvalidConfig, "texture cache has zero capacity")

// Returned by [Cache.Load]() for descriptors that weren't created with
// [SpriteDescriptor]() or [TextDescriptor](), like the zero value. These
// can never be matched, so they are rejected before touching the cache.
var ErrInvalidDescriptor = errors.New(errors.CodeInvalidInput, "texture cache descriptor has no valid kind")

// Root cause of every internal consistency failure: a cyclic chain,
// a chain walk over the limit, a chain pointer out of range or to a
// dead entry, or bookkeeping that doesn't add up. Consistency failures
// mean memory was corrupted somewhere and rendering can't safely go on,
// so the cache panics with them. Use [IsCorruption]() after recovering
// to tell them apart from other panics.
var ErrCorrupted = errors.New(errors.CodeInternal, "texture cache corrupted")

// Reports whether err (or a recovered panic value) is a cache
// consistency failure.
func IsCorruption(err interface{}) bool {
	asErr, isErr := err.(error)
	if !isErr { return false }
	return errors.Is(asErr, ErrCorrupted)
}

// Returns true if the error returned by [Cache.Load]() indicates a
// transient failure that may succeed if retried on a later frame.
func IsRetryable(err error) bool {
	return errors.IsRetryable(err)
}

func newCorruptionError(reason string, bucket uint32, index uint32) errors.PlatformError {
	err := errors.Wrap(ErrCorrupted, errors.CodeInternal, reason)
	return errors.WithContextMap(err, map[string]interface{}{
		"bucket": slotString(bucket),
		"entry":  slotString(index),
	})
}

func newSurfaceError(cause error, desc Descriptor) errors.PlatformError {
	err := errors.Wrap(cause, errors.CodeUnavailable, "surface creation failed")
	return errors.WithContext(err, "descriptor", desc.String())
}

func slotString(index uint32) string {
	if index == noEntry { return "none" }
	return strconv.FormatUint(uint64(index), 10)
}
