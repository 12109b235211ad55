package classfile

import "encoding/binary"

// AttributeInfo is an undecoded attribute. Only the attributes needed to
// describe a class's linkable surface are parsed into Parsed.
type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
	Parsed    interface{}
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

func (a *AttributeInfo) AsSignature() *SignatureAttribute {
	if sig, ok := a.Parsed.(*SignatureAttribute); ok {
		return sig
	}
	return nil
}

func parseSignatureAttribute(info []byte) *SignatureAttribute {
	if len(info) < 2 {
		return nil
	}
	return &SignatureAttribute{
		SignatureIndex: binary.BigEndian.Uint16(info[0:2]),
	}
}

func findAttribute(cp ConstantPool, attrs []AttributeInfo, name string) *AttributeInfo {
	for i := range attrs {
		if cp.GetUtf8(attrs[i].NameIndex) == name {
			return &attrs[i]
		}
	}
	return nil
}

func signatureOf(cp ConstantPool, attrs []AttributeInfo) string {
	attr := findAttribute(cp, attrs, "Signature")
	if attr == nil {
		return ""
	}
	sig := attr.AsSignature()
	if sig == nil {
		return ""
	}
	return cp.GetUtf8(sig.SignatureIndex)
}
