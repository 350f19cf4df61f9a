// Package mesh turns a classes.Mesh's raw VertexData/CompressedMesh
// buffers into flat, typed vertex and index arrays (§4.9). It is the only
// package that understands Unity's bit-packed vector formats and submesh
// triangulation rules; classes.Mesh itself stores nothing but the bytes.
package mesh
