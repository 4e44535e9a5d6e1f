package res

import "fmt"

// Archive is the model-archive root record ("FRES"). It gathers every model
// and embedded external file reachable from the archive header.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    'F' 'R' 'E' 'S'
//	 0x04    4    Format version
//	 0x08    2    Data alignment (power of two)
//	 0x0A    2    Flags
//	 0x0C    8    Archive name (string offset)
//	 0x14    8    Model dictionary offset
//	 0x1C    8    External file dictionary offset
type Archive struct {
	Version   uint32
	Alignment uint16
	Flags     uint16
	Name      string

	Models        *Dict[Model, *Model]
	ExternalFiles *Dict[ExternalFile, *ExternalFile]
}

// Parse implements Loadable.
func (a *Archive) Parse(l *Loader) error {
	if err := l.CheckSignature(ArchiveSignature); err != nil {
		return err
	}
	var err error
	if a.Version, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: archive header: %w", err)
	}
	if a.Alignment, err = l.ReadUint16(); err != nil {
		return fmt.Errorf("res: archive header: %w", err)
	}
	if a.Flags, err = l.ReadUint16(); err != nil {
		return fmt.Errorf("res: archive header: %w", err)
	}
	name, err := l.LoadString(nil)
	if err != nil {
		return fmt.Errorf("res: archive name: %w", err)
	}
	if name != nil {
		a.Name = *name
	}
	if a.Models, err = LoadDict[Model](l); err != nil {
		return fmt.Errorf("res: archive models: %w", err)
	}
	if a.ExternalFiles, err = LoadDict[ExternalFile](l); err != nil {
		return fmt.Errorf("res: archive external files: %w", err)
	}
	return nil
}

// ExternalFile is an opaque blob embedded in the archive, typically a
// texture or shader payload consumed by another tool.
//
// Its data offset precedes the size field that bounds it, so the payload is
// captured through a callback load once the size is known.
type ExternalFile struct {
	Size uint32
	Data []byte
}

// Parse implements Loadable.
func (f *ExternalFile) Parse(l *Loader) error {
	off, err := l.ReadOffset()
	if err != nil {
		return fmt.Errorf("res: external file: %w", err)
	}
	if f.Size, err = l.ReadUint32(); err != nil {
		return fmt.Errorf("res: external file: %w", err)
	}
	if _, err = l.ReadUint32(); err != nil { // reserved
		return fmt.Errorf("res: external file: %w", err)
	}
	f.Data, err = LoadCustomAt(l, func(l *Loader) ([]byte, error) {
		return l.ReadBytes(int(f.Size))
	}, off)
	if err != nil {
		return fmt.Errorf("res: external file data: %w", err)
	}
	return nil
}
