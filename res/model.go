package res

import "fmt"

// Model is a renderable model record ("FMDL"): a skeleton, vertex buffers,
// shapes and materials, plus free-form user data.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    'F' 'M' 'D' 'L'
//	 0x04    4    Flags
//	 0x08    8    Model name (string offset)
//	 0x10    8    Source path (string offset)
//	 0x18    8    Skeleton offset
//	 0x20    2    Vertex buffer count
//	 0x22    2    Reserved
//	 0x24    8    Vertex buffer array offset
//	 0x2C    8    Shape dictionary offset
//	 0x34    8    Material dictionary offset
//	 0x3C    8    User data dictionary offset
type Model struct {
	Flags uint32
	Name  string
	Path  string

	Skeleton      *Skeleton
	VertexBuffers []*VertexBuffer
	Shapes        *Dict[Shape, *Shape]
	Materials     *Dict[Material, *Material]
	UserData      *Dict[UserData, *UserData]
}

// Parse implements Loadable.
func (m *Model) Parse(l *Loader) error {
	if err := l.CheckSignature(ModelSignature); err != nil {
		return err
	}
	var err error
	if m.Flags, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: model header: %w", err)
	}
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: model name: %w", err)
	}
	if name != nil {
		m.Name = *name
	}
	path, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: model path: %w", err)
	}
	if path != nil {
		m.Path = *path
	}
	if m.Skeleton, err = Load[Skeleton](l); err != nil {
		return fmt.Errorf("res: model skeleton: %w", err)
	}
	vbCount, err := l.ReadUint16()
	if err != nil {
		return fmt.Errorf("res: model header: %w", err)
	}
	if _, err = l.ReadUint16(); err != nil { // reserved
		return fmt.Errorf("res: model header: %w", err)
	}
	if m.VertexBuffers, err = LoadList[VertexBuffer](l, int(vbCount)); err != nil {
		return fmt.Errorf("res: model vertex buffers: %w", err)
	}
	if m.Shapes, err = LoadDict[Shape](l); err != nil {
		return fmt.Errorf("res: model shapes: %w", err)
	}
	if m.Materials, err = LoadDict[Material](l); err != nil {
		return fmt.Errorf("res: model materials: %w", err)
	}
	if m.UserData, err = LoadDict[UserData](l); err != nil {
		return fmt.Errorf("res: model user data: %w", err)
	}
	return nil
}

// Skeleton is a bone hierarchy record ("FSKL").
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    'F' 'S' 'K' 'L'
//	 0x04    4    Flags (rotation mode, scale mode)
//	 0x08    2    Bone count
//	 0x0A    2    Reserved
//	 0x0C    8    Bone array offset
type Skeleton struct {
	Flags uint32
	Bones []*Bone
}

// Parse implements Loadable.
func (s *Skeleton) Parse(l *Loader) error {
	if err := l.CheckSignature(SkeletonSignature); err != nil {
		return err
	}
	var err error
	if s.Flags, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: skeleton header: %w", err)
	}
	boneCount, err := l.ReadUint16()
	if err != nil {
		return fmt.Errorf("res: skeleton header: %w", err)
	}
	if _, err = l.ReadUint16(); err != nil { // reserved
		return fmt.Errorf("res: skeleton header: %w", err)
	}
	if s.Bones, err = LoadList[Bone](l, int(boneCount)); err != nil {
		return fmt.Errorf("res: skeleton bones: %w", err)
	}
	return nil
}

// Bone is a single joint in a skeleton. Bones carry no signature; they are
// identified positionally within the skeleton's bone array.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    8    Bone name (string offset)
//	 0x08    2    Bone index
//	 0x0A    2    Parent bone index (0xFFFF for roots)
//	 0x0C    4    Flags
//	 0x10    8    User data dictionary offset
type Bone struct {
	Name        string
	Index       uint16
	ParentIndex uint16
	Flags       uint32
	UserData    *Dict[UserData, *UserData]
}

// BoneNoParent marks a root bone's parent index.
const BoneNoParent = 0xFFFF

// Parse implements Loadable.
func (b *Bone) Parse(l *Loader) error {
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: bone name: %w", err)
	}
	if name != nil {
		b.Name = *name
	}
	if b.Index, err = l.ReadUint16(); err != nil {
		return fmt.Errorf("res: bone: %w", err)
	}
	if b.ParentIndex, err = l.ReadUint16(); err != nil {
		return fmt.Errorf("res: bone: %w", err)
	}
	if b.Flags, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: bone: %w", err)
	}
	if b.UserData, err = LoadDict[UserData](l); err != nil {
		return fmt.Errorf("res: bone user data: %w", err)
	}
	return nil
}

// VertexBuffer describes one interleaved vertex stream and the attributes
// laid out inside it.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    Stride in bytes
//	 0x04    4    Vertex count
//	 0x08    2    Attribute count
//	 0x0A    2    Reserved
//	 0x0C    8    Attribute dictionary offset
type VertexBuffer struct {
	Stride      uint32
	VertexCount uint32
	Attributes  *Dict[VertexAttrib, *VertexAttrib]
}

// Parse implements Loadable.
func (v *VertexBuffer) Parse(l *Loader) error {
	var err error
	if v.Stride, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: vertex buffer: %w", err)
	}
	if v.VertexCount, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: vertex buffer: %w", err)
	}
	if _, err = l.ReadUint16(); err != nil { // attribute count, also in the dict
		return fmt.Errorf("res: vertex buffer: %w", err)
	}
	if _, err = l.ReadUint16(); err != nil { // reserved
		return fmt.Errorf("res: vertex buffer: %w", err)
	}
	if v.Attributes, err = LoadDict[VertexAttrib](l); err != nil {
		return fmt.Errorf("res: vertex buffer attributes: %w", err)
	}
	return nil
}

// VertexAttrib names one attribute inside a vertex buffer.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    8    Attribute name (string offset)
//	 0x08    4    Component format
//	 0x0C    2    Source buffer index
//	 0x0E    2    Byte offset within a vertex
type VertexAttrib struct {
	Name        string
	Format      uint32
	BufferIndex uint16
	Offset      uint16
}

// Parse implements Loadable.
func (a *VertexAttrib) Parse(l *Loader) error {
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: vertex attribute name: %w", err)
	}
	if name != nil {
		a.Name = *name
	}
	if a.Format, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: vertex attribute: %w", err)
	}
	if a.BufferIndex, err = l.ReadUint16(); err != nil {
		return fmt.Errorf("res: vertex attribute: %w", err)
	}
	if a.Offset, err = l.ReadUint16(); err != nil {
		return fmt.Errorf("res: vertex attribute: %w", err)
	}
	return nil
}

// Shape binds a run of meshes to a material ("FSHP").
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    'F' 'S' 'H' 'P'
//	 0x04    8    Shape name (string offset)
//	 0x0C    4    Flags
//	 0x10    2    Material index into the model's material dictionary
//	 0x12    2    Mesh count
//	 0x14    8    Mesh array offset
type Shape struct {
	Name          string
	Flags         uint32
	MaterialIndex uint16
	Meshes        []*Mesh
}

// Parse implements Loadable.
func (s *Shape) Parse(l *Loader) error {
	if err := l.CheckSignature(ShapeSignature); err != nil {
		return err
	}
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: shape name: %w", err)
	}
	if name != nil {
		s.Name = *name
	}
	if s.Flags, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: shape: %w", err)
	}
	if s.MaterialIndex, err = l.ReadUint16(); err != nil {
		return fmt.Errorf("res: shape: %w", err)
	}
	meshCount, err := l.ReadUint16()
	if err != nil {
		return fmt.Errorf("res: shape: %w", err)
	}
	if s.Meshes, err = LoadList[Mesh](l, int(meshCount)); err != nil {
		return fmt.Errorf("res: shape meshes: %w", err)
	}
	return nil
}

// Mesh is one drawable index run. Meshes carry no signature and no offset
// fields; their footprint is four u32 values.
type Mesh struct {
	PrimitiveType uint32
	IndexFormat   uint32
	IndexCount    uint32
	FirstVertex   uint32
}

// Parse implements Loadable.
func (m *Mesh) Parse(l *Loader) error {
	var err error
	if m.PrimitiveType, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: mesh: %w", err)
	}
	if m.IndexFormat, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: mesh: %w", err)
	}
	if m.IndexCount, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: mesh: %w", err)
	}
	if m.FirstVertex, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: mesh: %w", err)
	}
	return nil
}
