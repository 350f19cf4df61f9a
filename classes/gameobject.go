package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/format"
)

// GameObject is the scene-graph node object (§4.7): a name plus its
// component PPtrs.
type GameObject struct {
	Components []PPtr[Component]
	Layer      int32
	Name       string
}

func readGameObject(r *binary.Reader, serializedFileFormat int32, uv format.Version) (GameObject, error) {
	var g GameObject

	count, err := r.I32()
	if err != nil {
		return g, fmt.Errorf("gameobject component count: %w", err)
	}

	g.Components = make([]PPtr[Component], count)
	for i := range g.Components {
		if uv.Major < 3 {
			if _, err := r.I32(); err != nil { // discarded legacy int prefix
				return g, fmt.Errorf("gameobject component %d legacy prefix: %w", i, err)
			}
		}
		p, err := ReadPPtr[Component](r, serializedFileFormat)
		if err != nil {
			return g, fmt.Errorf("gameobject component %d: %w", i, err)
		}
		g.Components[i] = p
	}

	if g.Layer, err = r.I32(); err != nil {
		return g, fmt.Errorf("gameobject layer: %w", err)
	}
	if g.Name, err = r.AlignedString(); err != nil {
		return g, fmt.Errorf("gameobject name: %w", err)
	}

	return g, nil
}
