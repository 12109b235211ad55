package classfile

type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *MethodInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *MethodInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

// Signature returns the generic signature recorded for the method, or ""
// when the method carries no Signature attribute.
func (m *MethodInfo) Signature(cp ConstantPool) string {
	return signatureOf(cp, m.Attributes)
}

func (m *MethodInfo) IsBridge() bool    { return m.AccessFlags.IsBridge() }
func (m *MethodInfo) IsVarargs() bool   { return m.AccessFlags.IsVarargs() }
func (m *MethodInfo) IsSynthetic() bool { return m.AccessFlags.IsSynthetic() }

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == "<clinit>"
}

func (m *MethodInfo) ParsedDescriptor(cp ConstantPool) *MethodDescriptor {
	return ParseMethodDescriptor(m.Descriptor(cp))
}
