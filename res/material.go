package res

import "fmt"

// Material is a shading parameter record ("FMAT").
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    'F' 'M' 'A' 'T'
//	 0x04    8    Material name (string offset)
//	 0x0C    4    Flags
//	 0x10    2    Sampler count
//	 0x12    2    Texture count
//	 0x14    8    Sampler name array offset (array of string offsets)
//	 0x1C    8    Texture reference array offset
//	 0x24    8    Render info dictionary offset
//	 0x2C    8    User data dictionary offset
type Material struct {
	Name  string
	Flags uint32

	SamplerNames []*string
	TextureRefs  []*TextureRef
	RenderInfo   *Dict[RenderInfo, *RenderInfo]
	UserData     *Dict[UserData, *UserData]
}

// Parse implements Loadable.
func (m *Material) Parse(l *Loader) error {
	if err := l.CheckSignature(MaterialSignature); err != nil {
		return err
	}
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: material name: %w", err)
	}
	if name != nil {
		m.Name = *name
	}
	if m.Flags, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: material: %w", err)
	}
	samplerCount, err := l.ReadUint16()
	if err != nil {
		return fmt.Errorf("res: material: %w", err)
	}
	textureCount, err := l.ReadUint16()
	if err != nil {
		return fmt.Errorf("res: material: %w", err)
	}
	// The sampler names sit behind a pointer to an array of string offsets.
	m.SamplerNames, err = LoadCustom(l, func(l *Loader) ([]*string, error) {
		return l.LoadStrings(int(samplerCount), nil)
	})
	if err != nil {
		return fmt.Errorf("res: material sampler names: %w", err)
	}
	if m.TextureRefs, err = LoadList[TextureRef](l, int(textureCount)); err != nil {
		return fmt.Errorf("res: material texture refs: %w", err)
	}
	if m.RenderInfo, err = LoadDict[RenderInfo](l); err != nil {
		return fmt.Errorf("res: material render info: %w", err)
	}
	if m.UserData, err = LoadDict[UserData](l); err != nil {
		return fmt.Errorf("res: material user data: %w", err)
	}
	return nil
}

// TextureRef names a texture consumed by a material.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    8    Texture name (string offset)
//	 0x08    4    Dimension
//	 0x0C    4    Reserved
type TextureRef struct {
	Name      string
	Dimension uint32
}

// Parse implements Loadable.
func (t *TextureRef) Parse(l *Loader) error {
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: texture ref name: %w", err)
	}
	if name != nil {
		t.Name = *name
	}
	if t.Dimension, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: texture ref: %w", err)
	}
	if _, err = l.ReadUint32(); err != nil { // reserved
		return fmt.Errorf("res: texture ref: %w", err)
	}
	return nil
}

// RenderInfo is one named pipeline parameter. Its payload lives behind an
// offset bounded by the count stored in the record body, so it is read
// through a callback load.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    8    Parameter name (string offset)
//	 0x08    1    Value kind
//	 0x09    1    Reserved
//	 0x0A    2    Value count
//	 0x0C    8    Value array offset
type RenderInfo struct {
	Name   string
	Kind   uint8
	Values []uint32
}

// Parse implements Loadable.
func (r *RenderInfo) Parse(l *Loader) error {
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: render info name: %w", err)
	}
	if name != nil {
		r.Name = *name
	}
	if r.Kind, err = l.ReadUint8(); err != nil {
		return fmt.Errorf("res: render info: %w", err)
	}
	if _, err = l.ReadUint8(); err != nil { // reserved
		return fmt.Errorf("res: render info: %w", err)
	}
	count, err := l.ReadUint16()
	if err != nil {
		return fmt.Errorf("res: render info: %w", err)
	}
	r.Values, err = LoadCustom(l, func(l *Loader) ([]uint32, error) {
		vals := make([]uint32, count)
		for i := range vals {
			if vals[i], err = l.ReadUint32(); err != nil {
				return nil, err
			}
		}
		return vals, nil
	})
	if err != nil {
		return fmt.Errorf("res: render info values: %w", err)
	}
	return nil
}

// UserData is a free-form named value attached to models, bones and
// materials. The kind field selects the payload parsed behind the value
// offset: packed int32 values or an array of string offsets.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    8    Entry name (string offset)
//	 0x08    1    Value kind (UserDataInt32, UserDataString)
//	 0x09    1    Reserved
//	 0x0A    2    Value count
//	 0x0C    8    Value array offset
type UserData struct {
	Name    string
	Kind    uint8
	Ints    []int32
	Strings []*string
}

// Parse implements Loadable.
func (u *UserData) Parse(l *Loader) error {
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: user data name: %w", err)
	}
	if name != nil {
		u.Name = *name
	}
	if u.Kind, err = l.ReadUint8(); err != nil {
		return fmt.Errorf("res: user data: %w", err)
	}
	if _, err = l.ReadUint8(); err != nil { // reserved
		return fmt.Errorf("res: user data: %w", err)
	}
	count, err := l.ReadUint16()
	if err != nil {
		return fmt.Errorf("res: user data: %w", err)
	}
	switch u.Kind {
	case UserDataInt32:
		u.Ints, err = LoadCustom(l, func(l *Loader) ([]int32, error) {
			vals := make([]int32, count)
			for i := range vals {
				var verr error
				if vals[i], verr = l.ReadInt32(); verr != nil {
					return nil, verr
				}
			}
			return vals, nil
		})
	case UserDataString:
		u.Strings, err = LoadCustom(l, func(l *Loader) ([]*string, error) {
			return l.LoadStrings(int(count), nil)
		})
	default:
		return fmt.Errorf("res: user data %q: unknown value kind %d", u.Name, u.Kind)
	}
	if err != nil {
		return fmt.Errorf("res: user data values: %w", err)
	}
	return nil
}
