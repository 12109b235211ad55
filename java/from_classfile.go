package java

import (
	"io"
	"os"

	"github.com/dhamidi/javalink/classfile"
)

func ClassSurfaceFromFile(path string) (*ClassSurface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ClassSurfaceFromReader(f)
}

func ClassSurfaceFromReader(r io.Reader) (*ClassSurface, error) {
	cf, err := classfile.Parse(r)
	if err != nil {
		return nil, err
	}
	return ClassSurfaceFromClassFile(cf), nil
}

// ClassSurfaceFromClassFile keeps every field and every method except
// bridges, synthetic methods and static initializers.
func ClassSurfaceFromClassFile(cf *classfile.ClassFile) *ClassSurface {
	surface := &ClassSurface{
		Name: ParseInternalName(cf.ClassName()),
	}

	for i := range cf.Fields {
		surface.Fields = append(surface.Fields, Field{Name: cf.Fields[i].Name(cf.ConstantPool)})
	}

	for i := range cf.Methods {
		method := &cf.Methods[i]
		if method.IsSynthetic() || method.IsBridge() {
			continue
		}
		if method.IsStaticInitializer(cf.ConstantPool) {
			continue
		}
		surface.Methods = append(surface.Methods, methodFromMethodInfo(surface.Name, method, cf.ConstantPool))
	}

	return surface
}

func methodFromMethodInfo(owner QualifiedName, m *classfile.MethodInfo, cp classfile.ConstantPool) Method {
	method := Method{Name: m.Name(cp)}
	if m.IsConstructor(cp) {
		method.Name = owner.SimpleName()
	}

	var erased []string
	if desc := m.ParsedDescriptor(cp); desc != nil {
		erased = desc.ParameterNames()
	}
	var generic []string
	if sig := m.Signature(cp); sig != "" {
		generic = classfile.ParseMethodSignature(sig)
	}
	if len(generic) > len(erased) {
		generic = nil
	}

	// Compilers add leading parameters (outer instance, enum name and
	// ordinal) that the generic signature leaves out.
	offset := len(erased) - len(generic)
	method.Arguments = make([]Argument, len(erased))
	for i, name := range erased {
		arg := Argument{Erased: name}
		if generic != nil && i >= offset {
			arg.Generic = generic[i-offset]
		}
		arg.Vararg = m.IsVarargs() && i == len(erased)-1
		method.Arguments[i] = arg
	}
	return method
}
