// The surface subpackage defines the [Surface] type shared by caches
// and rendering backends, plus a few helpers to create, measure and
// release surfaces without caring about which build is in use.
//
// By default surfaces are Ebitengine images. Building with the gtex
// tag switches them to plain [*image.RGBA] values.
package surface
