// texcache is a fixed-capacity cache of rendered surfaces for sprites
// and text, designed to be used mainly with the Ebitengine game engine.
//
// Every rendering request is described by a [Descriptor]: a sprite id
// plus its modifiers (scale, tint, light levels...), or a text string
// plus its color and style flags. The cache hashes descriptors with
// 32-bit FNV-1a into a table of buckets and keeps the entries of each
// bucket in a singly linked chain. When all the slots are taken, the
// oldest inserted entry is evicted and its surface released.
//
// Surfaces are created by a [Backend]. The render subpackage provides
// one that composes sprites and rasterizes text on the CPU:
//   sprites, closer, err := render.OpenZipSprites("sprites.zip", 64)
//   if err != nil { ... }
//   defer closer.Close()
//   cache, err := texcache.NewCache(texcache.DefaultConfig(render.NewBackend(sprites)))
//   if err != nil { ... }
//
// Then, every frame:
//   id, err := cache.Load(texcache.TextDescriptor("HP: 100", 0xFFFFFF, 0))
//   if err != nil { ... } // see IsRetryable()
//   surf, _ := cache.Surface(id)
//
// Caches are not concurrent-safe, and they panic if they ever find their
// own structure corrupted. [Cache.Validate]() and [Cache.Distribution]()
// can be used in tests and tools to check the cache health.
package texcache
