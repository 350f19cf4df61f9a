// Package asset parses a SerializedFile (§4.4-4.5): one sub-file sliced
// out of a bundle's virtual file image, carrying a version-gated header, a
// type-tree schema per class, and the per-object directory describing
// where each object's bytes live within the file.
package asset
