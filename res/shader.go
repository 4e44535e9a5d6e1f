package res

import "fmt"

// ShaderArchive is the shader-binary root record ("BNSH"): a dictionary of
// compiled shader programs with their reflection tables.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    'B' 'N' 'S' 'H'
//	 0x04    4    Format version
//	 0x08    8    Archive name (string offset)
//	 0x10    8    Program dictionary offset
type ShaderArchive struct {
	Version  uint32
	Name     string
	Programs *Dict[ShaderProgram, *ShaderProgram]
}

// Parse implements Loadable.
func (s *ShaderArchive) Parse(l *Loader) error {
	if err := l.CheckSignature(ShaderArchiveSignature); err != nil {
		return err
	}
	var err error
	if s.Version, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: shader archive header: %w", err)
	}
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: shader archive name: %w", err)
	}
	if name != nil {
		s.Name = *name
	}
	if s.Programs, err = LoadDict[ShaderProgram](l); err != nil {
		return fmt.Errorf("res: shader archive programs: %w", err)
	}
	return nil
}

// ShaderProgram is one compiled program variant. Its vertex attribute names
// are stored as an inline run of string offsets inside the record body, so
// the footprint grows with the attribute count.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    8    Program name (string offset)
//	 0x08    4    Stage mask
//	 0x0C    2    Attribute count
//	 0x0E    2    Uniform block count
//	 0x10   8*N   Attribute name string offsets (inline)
//	  ...    8    Uniform block array offset
type ShaderProgram struct {
	Name        string
	StageMask   uint32
	AttribNames []*string
	Blocks      []*UniformBlock
}

// Parse implements Loadable.
func (p *ShaderProgram) Parse(l *Loader) error {
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: shader program name: %w", err)
	}
	if name != nil {
		p.Name = *name
	}
	if p.StageMask, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: shader program: %w", err)
	}
	attribCount, err := l.ReadUint16()
	if err != nil {
		return fmt.Errorf("res: shader program: %w", err)
	}
	blockCount, err := l.ReadUint16()
	if err != nil {
		return fmt.Errorf("res: shader program: %w", err)
	}
	if p.AttribNames, err = l.LoadStrings(int(attribCount), nil); err != nil {
		return fmt.Errorf("res: shader program attributes: %w", err)
	}
	if p.Blocks, err = LoadList[UniformBlock](l, int(blockCount)); err != nil {
		return fmt.Errorf("res: shader program blocks: %w", err)
	}
	return nil
}

// UniformBlock describes one bound constant buffer.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    8    Block name (string offset)
//	 0x08    1    Binding index
//	 0x09    1    Block type
//	 0x0A    2    Byte size
//	 0x0C    2    Uniform count
//	 0x0E    2    Reserved
//	 0x10    8    Uniform array offset
type UniformBlock struct {
	Name     string
	Index    uint8
	Type     uint8
	Size     uint16
	Uniforms []*Uniform
}

// Parse implements Loadable.
func (b *UniformBlock) Parse(l *Loader) error {
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: uniform block name: %w", err)
	}
	if name != nil {
		b.Name = *name
	}
	if b.Index, err = l.ReadUint8(); err != nil {
		return fmt.Errorf("res: uniform block: %w", err)
	}
	if b.Type, err = l.ReadUint8(); err != nil {
		return fmt.Errorf("res: uniform block: %w", err)
	}
	if b.Size, err = l.ReadUint16(); err != nil {
		return fmt.Errorf("res: uniform block: %w", err)
	}
	uniformCount, err := l.ReadUint16()
	if err != nil {
		return fmt.Errorf("res: uniform block: %w", err)
	}
	if _, err = l.ReadUint16(); err != nil { // reserved
		return fmt.Errorf("res: uniform block: %w", err)
	}
	if b.Uniforms, err = LoadList[Uniform](l, int(uniformCount)); err != nil {
		return fmt.Errorf("res: uniform block uniforms: %w", err)
	}
	return nil
}

// Uniform locates one named value inside a uniform block.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    8    Uniform name (string offset)
//	 0x08    2    Index within the program
//	 0x0A    2    Byte offset within the block
//	 0x0C    4    Reserved
type Uniform struct {
	Name        string
	Index       uint16
	BlockOffset uint16
}

// Parse implements Loadable.
func (u *Uniform) Parse(l *Loader) error {
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: uniform name: %w", err)
	}
	if name != nil {
		u.Name = *name
	}
	if u.Index, err = l.ReadUint16(); err != nil {
		return fmt.Errorf("res: uniform: %w", err)
	}
	if u.BlockOffset, err = l.ReadUint16(); err != nil {
		return fmt.Errorf("res: uniform: %w", err)
	}
	if _, err = l.ReadUint32(); err != nil { // reserved
		return fmt.Errorf("res: uniform: %w", err)
	}
	return nil
}
