package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
)

// Component is the base object every scene-graph behavior/renderer carries
// (§4.7): a single back-reference to its owning GameObject.
type Component struct {
	GameObject PPtr[GameObject]
}

func readComponent(r *binary.Reader, serializedFileFormat int32) (Component, error) {
	var c Component

	p, err := ReadPPtr[GameObject](r, serializedFileFormat)
	if err != nil {
		return c, fmt.Errorf("component game object: %w", err)
	}
	c.GameObject = p

	return c, nil
}

// Transform is a GameObject's position/rotation/scale plus its place in
// the scene hierarchy (§4.7).
type Transform struct {
	GameObject   PPtr[GameObject]
	LocalRotation [4]float32
	LocalPosition [3]float32
	LocalScale    [3]float32
	Children      []PPtr[Transform]
	Father        PPtr[Transform]
}

func readTransform(r *binary.Reader, serializedFileFormat int32) (Transform, error) {
	var t Transform

	p, err := ReadPPtr[GameObject](r, serializedFileFormat)
	if err != nil {
		return t, fmt.Errorf("transform game object: %w", err)
	}
	t.GameObject = p

	rot, err := r.FixedF32(4)
	if err != nil {
		return t, fmt.Errorf("transform local rotation: %w", err)
	}
	copy(t.LocalRotation[:], rot)

	pos, err := r.FixedF32(3)
	if err != nil {
		return t, fmt.Errorf("transform local position: %w", err)
	}
	copy(t.LocalPosition[:], pos)

	scale, err := r.FixedF32(3)
	if err != nil {
		return t, fmt.Errorf("transform local scale: %w", err)
	}
	copy(t.LocalScale[:], scale)

	childCount, err := r.I32()
	if err != nil {
		return t, fmt.Errorf("transform child count: %w", err)
	}
	t.Children = make([]PPtr[Transform], childCount)
	for i := range t.Children {
		c, err := ReadPPtr[Transform](r, serializedFileFormat)
		if err != nil {
			return t, fmt.Errorf("transform child %d: %w", i, err)
		}
		t.Children[i] = c
	}

	father, err := ReadPPtr[Transform](r, serializedFileFormat)
	if err != nil {
		return t, fmt.Errorf("transform father: %w", err)
	}
	t.Father = father

	return t, nil
}
