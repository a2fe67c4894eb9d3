package isa

import (
	"io"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

// ROM image file: a small header followed by 3 bytes per ROM slot, every
// slot present (unused slots are encoded NOOPs).

var imageMagic = [4]byte{'E', 'L', 'T', 'R'}

type imageHeader struct {
	Magic   [4]byte
	Version uint8
	Arch    uint8
	Count   uint16 `struc:"uint16,big"`
}

const imageVersion = 1

// WriteImage persists a full ROM for the given architecture.
func WriteImage(w io.Writer, a Arch, rom []Word) error {
	if len(rom) != a.ROMSize() {
		return errors.Errorf("ROM has %d slots, %s wants %d", len(rom), a, a.ROMSize())
	}

	hdr := &imageHeader{Magic: imageMagic, Version: imageVersion, Arch: uint8(a), Count: uint16(len(rom))}
	if err := struc.Pack(w, hdr); err != nil {
		return errors.Wrap(err, "writing ROM image header")
	}

	buf := make([]byte, 0, len(rom)*3)
	for _, word := range rom {
		b := word.Bytes()
		buf = append(buf, b[0], b[1], b[2])
	}
	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "writing ROM image body")
	}
	return nil
}

// ReadImage loads a ROM image, returning the architecture it was built for.
func ReadImage(r io.Reader) (Arch, []Word, error) {
	hdr := &imageHeader{}
	if err := struc.Unpack(r, hdr); err != nil {
		return 0, nil, errors.Wrap(err, "reading ROM image header")
	}
	if hdr.Magic != imageMagic {
		return 0, nil, errors.New("not a ROM image (bad magic)")
	}
	if hdr.Version != imageVersion {
		return 0, nil, errors.Errorf("unsupported ROM image version %d", hdr.Version)
	}

	a := Arch(hdr.Arch)
	if a != V1 && a != V2 {
		return 0, nil, errors.Errorf("unknown architecture tag %d", hdr.Arch)
	}
	if int(hdr.Count) != a.ROMSize() {
		return 0, nil, errors.Errorf("ROM image has %d slots, %s wants %d", hdr.Count, a, a.ROMSize())
	}

	buf := make([]byte, int(hdr.Count)*3)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, nil, errors.Wrap(err, "reading ROM image body")
	}

	rom := make([]Word, hdr.Count)
	for i := range rom {
		rom[i] = WordFromBytes([3]byte{buf[i*3], buf[i*3+1], buf[i*3+2]})
	}
	return a, rom, nil
}
