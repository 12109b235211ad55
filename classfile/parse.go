package classfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotClassFile is returned when the input does not start with the
// classfile magic number.
var ErrNotClassFile = errors.New("not a class file")

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

// readBytes grows its buffer as input arrives, so a corrupt length cannot
// allocate more than the input actually holds.
func (r *reader) readBytes(n uint32) []byte {
	if r.err != nil {
		return nil
	}
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r.r, int64(n)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		r.err = err
		return nil
	}
	return buf.Bytes()
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: magic 0x%X", ErrNotClassFile, magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}

	constantPoolCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read header: %w", r.err)
	}
	if constantPoolCount == 0 {
		return nil, fmt.Errorf("invalid constant pool count 0")
	}

	cf.ConstantPool = make(ConstantPool, constantPoolCount-1)
	for i := uint16(1); i < constantPoolCount; i++ {
		entry, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		cf.ConstantPool[i-1] = entry
		if entry.Tag().wide() {
			// the slot after a long or double is unusable
			i++
		}
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		cf.Interfaces[i] = r.readU2()
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}

	fieldsCount := r.readU2()
	cf.Fields = make([]FieldInfo, fieldsCount)
	for i := range cf.Fields {
		cf.Fields[i] = FieldInfo{
			AccessFlags:     AccessFlags(r.readU2()),
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
			Attributes:      readAttributes(r, cf.ConstantPool),
		}
		if r.err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, r.err)
		}
	}

	methodsCount := r.readU2()
	cf.Methods = make([]MethodInfo, methodsCount)
	for i := range cf.Methods {
		cf.Methods[i] = MethodInfo{
			AccessFlags:     AccessFlags(r.readU2()),
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
			Attributes:      readAttributes(r, cf.ConstantPool),
		}
		if r.err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, r.err)
		}
	}

	cf.Attributes = readAttributes(r, cf.ConstantPool)
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", r.err)
	}

	return cf, nil
}

func readConstantPoolEntry(r *reader) (ConstantPoolEntry, error) {
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil, r.err
	}

	var entry ConstantPoolEntry
	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		entry = &ConstantUtf8Info{Value: decodeModifiedUtf8(r.readBytes(uint32(length)))}

	case ConstantInteger, ConstantFloat:
		entry = &ConstantNumericInfo{Kind: tag, Bits: uint64(r.readU4())}

	case ConstantLong, ConstantDouble:
		high := r.readU4()
		low := r.readU4()
		entry = &ConstantNumericInfo{Kind: tag, Bits: uint64(high)<<32 | uint64(low)}

	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}

	case ConstantString, ConstantMethodType, ConstantModule, ConstantPackage:
		entry = &ConstantRefInfo{Kind: tag, First: r.readU2()}

	case ConstantMethodHandle:
		kind := r.readU1()
		entry = &ConstantRefInfo{Kind: tag, First: uint16(kind), Second: r.readU2()}

	case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref,
		ConstantNameAndType, ConstantDynamic, ConstantInvokeDynamic:
		first := r.readU2()
		entry = &ConstantRefInfo{Kind: tag, First: first, Second: r.readU2()}

	default:
		return nil, fmt.Errorf("unknown constant pool tag: %d", tag)
	}

	if r.err != nil {
		return nil, r.err
	}
	return entry, nil
}

func readAttributes(r *reader, cp ConstantPool) []AttributeInfo {
	count := r.readU2()
	if r.err != nil {
		return nil
	}
	attrs := make([]AttributeInfo, 0, count)
	for i := uint16(0); i < count; i++ {
		nameIndex := r.readU2()
		length := r.readU4()
		info := r.readBytes(length)
		if r.err != nil {
			return nil
		}

		attr := AttributeInfo{NameIndex: nameIndex, Info: info}
		if cp.GetUtf8(nameIndex) == "Signature" {
			attr.Parsed = parseSignatureAttribute(info)
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func decodeModifiedUtf8(bytes []byte) string {
	runes := make([]rune, 0, len(bytes))
	i := 0
	for i < len(bytes) {
		b := bytes[i]
		if b&0x80 == 0 {
			runes = append(runes, rune(b))
			i++
		} else if b&0xE0 == 0xC0 {
			if i+1 >= len(bytes) {
				break
			}
			r := rune(b&0x1F)<<6 | rune(bytes[i+1]&0x3F)
			runes = append(runes, r)
			i += 2
		} else if b&0xF0 == 0xE0 {
			if i+2 >= len(bytes) {
				break
			}
			r := rune(b&0x0F)<<12 | rune(bytes[i+1]&0x3F)<<6 | rune(bytes[i+2]&0x3F)
			// surrogate pairs are encoded as two three-byte sequences
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(bytes) && bytes[i+3] == 0xED {
				low := rune(bytes[i+3]&0x0F)<<12 | rune(bytes[i+4]&0x3F)<<6 | rune(bytes[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		} else {
			runes = append(runes, rune(b))
			i++
		}
	}
	return string(runes)
}
