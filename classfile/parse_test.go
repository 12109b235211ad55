package classfile_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dhamidi/javalink/classfile"
	"github.com/dhamidi/javalink/classfile/classfiletest"
)

func TestParseClassFile(t *testing.T) {
	class := classfiletest.Class{
		Name:   "com/example/Widget$Part",
		Access: classfile.AccPublic | classfile.AccSuper,
		Fields: []classfiletest.Field{
			classfiletest.F("COUNT", "I"),
			{Name: "hidden", Descriptor: "Ljava/lang/String;", Access: classfile.AccPrivate},
		},
		Methods: []classfiletest.Method{
			classfiletest.M("<init>", "()V"),
			classfiletest.M("resize", "(II)V"),
			classfiletest.M("resize", "(D)V"),
			{
				Name:       "wrap",
				Descriptor: "(Ljava/lang/Object;Ljava/util/List;)V",
				Signature:  "<T:Ljava/lang/Object;>(TT;Ljava/util/List<TT;>;)V",
				Access:     classfile.AccPublic,
			},
		},
	}

	cf, err := classfile.Parse(bytes.NewReader(class.Bytes()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	t.Run("class name", func(t *testing.T) {
		if got, want := cf.ClassName(), "com/example/Widget$Part"; got != want {
			t.Errorf("ClassName() = %q, want %q", got, want)
		}
	})

	t.Run("super class", func(t *testing.T) {
		if got, want := cf.SuperClassName(), "java/lang/Object"; got != want {
			t.Errorf("SuperClassName() = %q, want %q", got, want)
		}
	})

	t.Run("access flags", func(t *testing.T) {
		if !cf.IsPublic() {
			t.Error("expected class to be public")
		}
		if cf.IsInterface() {
			t.Error("expected class not to be an interface")
		}
	})

	t.Run("fields", func(t *testing.T) {
		f := cf.GetField("COUNT")
		if f == nil {
			t.Fatal("GetField(COUNT) = nil")
		}
		if got := classfile.ParseFieldDescriptor(f.Descriptor(cf.ConstantPool)).String(); got != "int" {
			t.Errorf("COUNT type = %q, want %q", got, "int")
		}
		hidden := cf.GetField("hidden")
		if hidden == nil || hidden.AccessFlags.IsPublic() {
			t.Error("expected hidden to be present and non-public")
		}
		if cf.GetField("missing") != nil {
			t.Error("GetField(missing) should be nil")
		}
	})

	t.Run("overloads keep declaration order", func(t *testing.T) {
		methods := cf.GetMethods("resize")
		if len(methods) != 2 {
			t.Fatalf("len(GetMethods(resize)) = %d, want 2", len(methods))
		}
		if got := methods[0].Descriptor(cf.ConstantPool); got != "(II)V" {
			t.Errorf("first overload = %q, want %q", got, "(II)V")
		}
		if got := methods[1].Descriptor(cf.ConstantPool); got != "(D)V" {
			t.Errorf("second overload = %q, want %q", got, "(D)V")
		}
	})

	t.Run("constructor", func(t *testing.T) {
		m := cf.GetMethod("<init>", "()V")
		if m == nil || !m.IsConstructor(cf.ConstantPool) {
			t.Fatal("expected a constructor")
		}
	})

	t.Run("signature attribute", func(t *testing.T) {
		m := cf.GetMethods("wrap")[0]
		want := "<T:Ljava/lang/Object;>(TT;Ljava/util/List<TT;>;)V"
		if got := m.Signature(cf.ConstantPool); got != want {
			t.Errorf("Signature() = %q, want %q", got, want)
		}
		if got := cf.GetMethods("resize")[0].Signature(cf.ConstantPool); got != "" {
			t.Errorf("Signature() of plain method = %q, want empty", got)
		}
	})
}

func TestParseFile(t *testing.T) {
	dir := classfiletest.WriteDir(t, t.TempDir(), classfiletest.Public("a/B", nil))
	cf, err := classfile.ParseFile(filepath.Join(dir, "a", "B.class"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if got := cf.ClassName(); got != "a/B" {
		t.Errorf("ClassName() = %q, want %q", got, "a/B")
	}

	if _, err := classfile.ParseFile(filepath.Join(dir, "missing.class")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"bad magic", []byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 52}},
		{"truncated", classfiletest.Public("a/B", nil).Bytes()[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := classfile.Parse(bytes.NewReader(tt.input)); err == nil {
				t.Error("Parse() error = nil, want error")
			}
		})
	}

	_, err := classfile.Parse(bytes.NewReader([]byte{0xca, 0xfe, 0xba, 0xbf, 0, 0, 0, 52}))
	if !errors.Is(err, classfile.ErrNotClassFile) {
		t.Errorf("Parse(bad magic) error = %v, want ErrNotClassFile", err)
	}
}

func TestParseOversizedAttribute(t *testing.T) {
	input := []byte{
		0xca, 0xfe, 0xba, 0xbe, 0, 0, 0, 52,
		0, 2, // constant pool count
		1, 0, 3, 'F', 'o', 'o',
		0, 0x21, 0, 0, 0, 0, // access, this, super
		0, 0, 0, 0, 0, 0, // interfaces, fields, methods
		0, 1, // attributes
		0, 1, 0xff, 0xff, 0xff, 0xff, // name, length near 4 GiB
		1, 2, 3, 4,
	}

	_, err := classfile.Parse(bytes.NewReader(input))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Parse() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	tests := []struct {
		desc       string
		params     []string
		returnType string
	}{
		{"()V", []string{}, ""},
		{"(II)V", []string{"int", "int"}, ""},
		{"(Ljava/lang/String;[I)Z", []string{"java.lang.String", "int[]"}, "boolean"},
		{"([[Ljava/util/Map$Entry;J)Ljava/lang/Object;", []string{"java.util.Map.Entry[][]", "long"}, "java.lang.Object"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md := classfile.ParseMethodDescriptor(tt.desc)
			if md == nil {
				t.Fatalf("ParseMethodDescriptor(%q) = nil", tt.desc)
			}
			if got := md.ParameterNames(); !reflect.DeepEqual(got, tt.params) {
				t.Errorf("ParameterNames() = %q, want %q", got, tt.params)
			}
			got := ""
			if md.ReturnType != nil {
				got = md.ReturnType.String()
			}
			if got != tt.returnType {
				t.Errorf("ReturnType = %q, want %q", got, tt.returnType)
			}
		})
	}

	for _, bad := range []string{"", "V", "(I", "(Q)V", "(Ljava/lang/String)V"} {
		if md := classfile.ParseMethodDescriptor(bad); md != nil {
			t.Errorf("ParseMethodDescriptor(%q) = %+v, want nil", bad, md)
		}
	}
}

func TestParseFieldDescriptor(t *testing.T) {
	if ft := classfile.ParseFieldDescriptor("II"); ft != nil {
		t.Errorf("ParseFieldDescriptor(II) = %+v, want nil", ft)
	}
	ft := classfile.ParseFieldDescriptor("[Ljava/lang/String;")
	if ft == nil || !ft.IsArray() || ft.IsPrimitive() {
		t.Fatalf("ParseFieldDescriptor([Ljava/lang/String;) = %+v", ft)
	}
	if got := ft.String(); got != "java.lang.String[]" {
		t.Errorf("String() = %q, want %q", got, "java.lang.String[]")
	}
}

func TestParseMethodSignature(t *testing.T) {
	tests := []struct {
		sig  string
		want []string
	}{
		{"()V", []string{}},
		{"<T:Ljava/lang/Object;>(TT;)V", []string{"T"}},
		{"(Ljava/util/List<+Ljava/lang/Number;>;[TE;)V", []string{"java.util.List", "E[]"}},
		{"(Ljava/util/Map<TK;TV;>;I)TV;", []string{"java.util.Map", "int"}},
		{"(Lcom/x/Outer<TT;>.Inner;)V", []string{"com.x.Outer.Inner"}},
		{"(Ljava/util/Map$Entry<TK;TV;>;)V", []string{"java.util.Map.Entry"}},
		{"<T::Ljava/lang/Comparable<-TT;>;>([TT;Ljava/lang/Object;)V", []string{"T[]", "java.lang.Object"}},
		{"no parens", nil},
		{"(Ljava/lang/String", nil},
		{"(Q)V", nil},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			if got := classfile.ParseMethodSignature(tt.sig); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMethodSignature(%q) = %q, want %q", tt.sig, got, tt.want)
			}
		})
	}
}

func TestNameConversions(t *testing.T) {
	if got := classfile.InternalToSourceName("java/util/Map$Entry"); got != "java.util.Map.Entry" {
		t.Errorf("InternalToSourceName = %q", got)
	}
	if got := classfile.InternalToBinaryName("java/util/Map$Entry"); got != "java.util.Map$Entry" {
		t.Errorf("InternalToBinaryName = %q", got)
	}
	if got := classfile.BinaryToInternalName("java.util.Map$Entry"); got != "java/util/Map$Entry" {
		t.Errorf("BinaryToInternalName = %q", got)
	}
}
