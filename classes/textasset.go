package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
)

// TextAsset holds an arbitrary text or binary payload (§4.7).
type TextAsset struct {
	Name   string
	Script []byte
}

// ScriptString returns Script interpreted as UTF-8 text.
func (t TextAsset) ScriptString() string { return string(t.Script) }

func readTextAsset(r *binary.Reader) (TextAsset, error) {
	var t TextAsset

	var err error
	if t.Name, err = r.AlignedString(); err != nil {
		return t, fmt.Errorf("textasset name: %w", err)
	}

	length, err := r.I32()
	if err != nil {
		return t, fmt.Errorf("textasset length: %w", err)
	}
	if t.Script, err = r.ReadBytesCopy(int(length)); err != nil {
		return t, fmt.Errorf("textasset script: %w", err)
	}

	return t, nil
}
