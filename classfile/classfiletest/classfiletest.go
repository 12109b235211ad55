// Package classfiletest assembles small but well-formed class files, jars
// and exploded class directories for tests.
package classfiletest

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/javalink/classfile"
)

// Class describes the class file to generate. Name is in internal form
// ("com/example/Foo").
type Class struct {
	Name    string
	Access  classfile.AccessFlags
	Fields  []Field
	Methods []Method
}

type Field struct {
	Name       string
	Descriptor string
	Access     classfile.AccessFlags
}

type Method struct {
	Name       string
	Descriptor string
	Signature  string
	Access     classfile.AccessFlags
}

// Public returns a public class with the given members.
func Public(name string, fields []Field, methods ...Method) Class {
	return Class{Name: name, Access: classfile.AccPublic | classfile.AccSuper, Fields: fields, Methods: methods}
}

// M is shorthand for a public method.
func M(name, descriptor string) Method {
	return Method{Name: name, Descriptor: descriptor, Access: classfile.AccPublic}
}

// F is shorthand for a public field.
func F(name, descriptor string) Field {
	return Field{Name: name, Descriptor: descriptor, Access: classfile.AccPublic}
}

type pool struct {
	buf     bytes.Buffer
	count   uint16
	utf8s   map[string]uint16
	classes map[string]uint16
}

func (p *pool) utf8(s string) uint16 {
	if idx, ok := p.utf8s[s]; ok {
		return idx
	}
	p.count++
	p.buf.WriteByte(byte(classfile.ConstantUtf8))
	binary.Write(&p.buf, binary.BigEndian, uint16(len(s)))
	p.buf.WriteString(s)
	p.utf8s[s] = p.count
	return p.count
}

func (p *pool) class(name string) uint16 {
	if idx, ok := p.classes[name]; ok {
		return idx
	}
	nameIdx := p.utf8(name)
	p.count++
	p.buf.WriteByte(byte(classfile.ConstantClass))
	binary.Write(&p.buf, binary.BigEndian, nameIdx)
	p.classes[name] = p.count
	return p.count
}

// Bytes encodes the class as a version 52 class file.
func (c Class) Bytes() []byte {
	p := &pool{utf8s: map[string]uint16{}, classes: map[string]uint16{}}
	var body bytes.Buffer
	u2 := func(v uint16) { binary.Write(&body, binary.BigEndian, v) }

	u2(uint16(c.Access))
	u2(p.class(c.Name))
	u2(p.class("java/lang/Object"))
	u2(0)

	u2(uint16(len(c.Fields)))
	for _, f := range c.Fields {
		u2(uint16(f.Access))
		u2(p.utf8(f.Name))
		u2(p.utf8(f.Descriptor))
		u2(0)
	}

	u2(uint16(len(c.Methods)))
	for _, m := range c.Methods {
		u2(uint16(m.Access))
		u2(p.utf8(m.Name))
		u2(p.utf8(m.Descriptor))
		if m.Signature == "" {
			u2(0)
			continue
		}
		u2(1)
		u2(p.utf8("Signature"))
		binary.Write(&body, binary.BigEndian, uint32(2))
		u2(p.utf8(m.Signature))
	}

	u2(0)

	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint32(classfile.Magic))
	binary.Write(&out, binary.BigEndian, uint16(0))
	binary.Write(&out, binary.BigEndian, uint16(52))
	binary.Write(&out, binary.BigEndian, p.count+1)
	out.Write(p.buf.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

// WriteDir writes each class below dir at its storage path and returns dir.
func WriteDir(t testing.TB, dir string, classes ...Class) string {
	t.Helper()
	for _, c := range classes {
		path := filepath.Join(dir, filepath.FromSlash(c.Name)+".class")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, c.Bytes(), 0o644); err != nil {
			t.Fatalf("write class: %v", err)
		}
	}
	return dir
}

// WriteJar writes a jar containing the classes to path and returns path.
func WriteJar(t testing.TB, path string, classes ...Class) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create jar: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, c := range classes {
		w, err := zw.Create(c.Name + ".class")
		if err != nil {
			t.Fatalf("create jar entry: %v", err)
		}
		if _, err := w.Write(c.Bytes()); err != nil {
			t.Fatalf("write jar entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close jar: %v", err)
	}
	return path
}
