// The render subpackage provides a default [texcache.Backend] that
// materializes surfaces on the CPU and uploads them.
//
// Sprites are obtained from a [SpriteSource], scaled and lit, and text
// is rasterized with a fixed bitmap face. The results are approximate:
// this backend exists to get surfaces into a cache quickly, not to
// compete with a real renderer.
//
//   sprites, err := render.NewFSSprites(os.DirFS("gfx"), 512)
//   if err != nil { ... }
//   config := texcache.DefaultConfig(render.NewBackend(sprites))
//   cache, err := texcache.NewCache(config)
package render
