package classfile

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

// ConstantNumericInfo holds Integer, Float, Long and Double constants as
// their raw big-endian bits. Linking never needs their values.
type ConstantNumericInfo struct {
	Kind ConstantTag
	Bits uint64
}

func (c *ConstantNumericInfo) Tag() ConstantTag { return c.Kind }

// ConstantRefInfo covers every remaining entry kind, all of which consist
// of one or two constant pool indices (MethodHandle stores its reference
// kind in First).
type ConstantRefInfo struct {
	Kind   ConstantTag
	First  uint16
	Second uint16
}

func (c *ConstantRefInfo) Tag() ConstantTag { return c.Kind }

type ConstantPool []ConstantPoolEntry

func (cp ConstantPool) entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if entry, ok := cp.entry(index).(*ConstantUtf8Info); ok {
		return entry.Value
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if entry, ok := cp.entry(index).(*ConstantClassInfo); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	if entry, ok := cp.entry(index).(*ConstantRefInfo); ok && entry.Kind == ConstantNameAndType {
		return cp.GetUtf8(entry.First), cp.GetUtf8(entry.Second)
	}
	return "", ""
}
