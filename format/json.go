package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javalink/java"
)

type JSONEncoder struct {
	w     io.Writer
	class *java.ClassSurface
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *java.ClassSurface) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = e.w.Write([]byte("\n"))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildClassData(), "", "  ")
}

type jsonClass struct {
	Name       string       `json:"name"`
	SimpleName string       `json:"simpleName"`
	Package    string       `json:"package"`
	Fields     []string     `json:"fields,omitempty"`
	Methods    []jsonMethod `json:"methods,omitempty"`
}

type jsonMethod struct {
	Name      string         `json:"name"`
	Fragment  string         `json:"fragment"`
	Arguments []jsonArgument `json:"arguments"`
}

type jsonArgument struct {
	Erased  string `json:"erased"`
	Generic string `json:"generic,omitempty"`
	Vararg  bool   `json:"vararg,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	c := e.class
	data := jsonClass{
		Name:       c.FullName(),
		SimpleName: c.Name.SimpleName(),
		Package:    c.Package().Name(),
	}
	for _, f := range c.Fields {
		data.Fields = append(data.Fields, f.Name)
	}
	for _, m := range c.Methods {
		jm := jsonMethod{Name: m.Name, Fragment: m.Fragment(), Arguments: []jsonArgument{}}
		for _, a := range m.Arguments {
			jm.Arguments = append(jm.Arguments, jsonArgument{Erased: a.Erased, Generic: a.Generic, Vararg: a.Vararg})
		}
		data.Methods = append(data.Methods, jm)
	}
	return data
}
