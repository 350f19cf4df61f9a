// Package bundle parses Unity's UnityFS container format (§4.3): the
// outer archive that holds one or more compressed blocks whose
// concatenation forms a virtual file image, sliced into named nodes
// (typically a SerializedFile plus its streamed resource files).
package bundle
