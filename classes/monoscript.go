package classes

import (
	"fmt"

	"github.com/go-unity/assetkit/binary"
	"github.com/go-unity/assetkit/format"
)

// MonoBehaviour is a scripted component: the GameObject it's attached to
// plus a PPtr to the MonoScript defining its fields (§4.7). assetkit does
// not decode a MonoBehaviour's serialized field blob, since its layout is
// defined by the script's own type tree rather than a fixed schedule.
type MonoBehaviour struct {
	GameObject PPtr[GameObject]
	Enabled    bool
	Script     PPtr[MonoScript]
	Name       string
}

func readMonoBehaviour(r *binary.Reader, serializedFileFormat int32) (MonoBehaviour, error) {
	var m MonoBehaviour

	g, err := ReadPPtr[GameObject](r, serializedFileFormat)
	if err != nil {
		return m, fmt.Errorf("monobehaviour game object: %w", err)
	}
	m.GameObject = g

	if m.Enabled, err = r.Bool(); err != nil {
		return m, fmt.Errorf("monobehaviour enabled: %w", err)
	}
	if err := r.Align(4); err != nil {
		return m, fmt.Errorf("monobehaviour align after enabled: %w", err)
	}

	s, err := ReadPPtr[MonoScript](r, serializedFileFormat)
	if err != nil {
		return m, fmt.Errorf("monobehaviour script: %w", err)
	}
	m.Script = s

	if m.Name, err = r.AlignedString(); err != nil {
		return m, fmt.Errorf("monobehaviour name: %w", err)
	}

	return m, nil
}

// MonoScript identifies the compiled script class a MonoBehaviour
// instantiates (§4.7).
type MonoScript struct {
	Name            string
	ExecutionOrder  int32
	PropertiesHash  []byte
	PathName        string
	ClassName       string
	Namespace       string
	AssemblyName    string
	IsEditorScript  bool
}

func readMonoScript(r *binary.Reader, uv format.Version) (MonoScript, error) {
	var m MonoScript

	var err error
	if m.Name, err = r.AlignedString(); err != nil {
		return m, fmt.Errorf("monoscript name: %w", err)
	}

	if uv.AtLeast(3, 4) {
		if m.ExecutionOrder, err = r.I32(); err != nil {
			return m, fmt.Errorf("monoscript execution order: %w", err)
		}
	}

	if uv.AtLeast(5) {
		hash, err := r.ReadBytesCopy(16)
		if err != nil {
			return m, fmt.Errorf("monoscript properties hash: %w", err)
		}
		m.PropertiesHash = hash
	} else {
		var h32 uint32
		if h32, err = r.U32(); err != nil {
			return m, fmt.Errorf("monoscript properties hash: %w", err)
		}
		m.PropertiesHash = []byte{byte(h32), byte(h32 >> 8), byte(h32 >> 16), byte(h32 >> 24)}
	}

	if uv.Less(3) {
		if m.PathName, err = r.AlignedString(); err != nil {
			return m, fmt.Errorf("monoscript path name: %w", err)
		}
	}

	if m.ClassName, err = r.AlignedString(); err != nil {
		return m, fmt.Errorf("monoscript class name: %w", err)
	}

	if uv.AtLeast(3) {
		if m.Namespace, err = r.AlignedString(); err != nil {
			return m, fmt.Errorf("monoscript namespace: %w", err)
		}
	}

	if m.AssemblyName, err = r.AlignedString(); err != nil {
		return m, fmt.Errorf("monoscript assembly name: %w", err)
	}

	if uv.Less(2018, 2) {
		if m.IsEditorScript, err = r.Bool(); err != nil {
			return m, fmt.Errorf("monoscript is editor script: %w", err)
		}
		if err := r.Align(4); err != nil {
			return m, fmt.Errorf("monoscript align after editor flag: %w", err)
		}
	}

	return m, nil
}
