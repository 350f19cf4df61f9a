// Package texture decodes Unity Texture2D/Sprite pixel payloads into
// tightly packed RGBA8 buffers (§4.8). Each format has its own decode
// function; Decode dispatches by format.TextureFormat and returns
// errs.ErrUnimplemented for anything outside the supported matrix.
//
// Every decoder follows the same pipeline: validate input length against
// the format's bytes-per-unit ratio, walk decode units writing RGBA8 into
// the output buffer, then flip the image vertically, since Unity stores
// texture data bottom-up.
package texture
