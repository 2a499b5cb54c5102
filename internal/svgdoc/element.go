package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	svgNamespace   = "http://www.w3.org/2000/svg"
	xlinkNamespace = "http://www.w3.org/1999/xlink"
)

// element is a parsed XML element. Attribute keys are local names;
// foreign elements keep an empty name so the converter ignores them.
type element struct {
	name     string
	attrs    map[string]string
	children []*element

	// text holds the character data of a text element, including the
	// content of nested tspan elements, in document order.
	text strings.Builder
}

func (e *element) attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return strings.TrimSpace(v), ok
}

// readElements decodes r into an element tree and returns its root.
func readElements(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			e := newElement(t)
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrMalformed)
				}
				root = e
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, e)
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if txt := textAncestor(stack); txt != nil {
				txt.text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	return root, nil
}

func newElement(t xml.StartElement) *element {
	e := &element{attrs: make(map[string]string, len(t.Attr))}
	if t.Name.Space == "" || t.Name.Space == svgNamespace {
		e.name = t.Name.Local
	}
	for _, a := range t.Attr {
		switch a.Name.Space {
		case "":
			e.attrs[a.Name.Local] = a.Value
		case xlinkNamespace, "xlink":
			if _, ok := e.attrs[a.Name.Local]; !ok {
				e.attrs[a.Name.Local] = a.Value
			}
		}
	}
	return e
}

func textAncestor(stack []*element) *element {
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i].name {
		case "text":
			return stack[i]
		case "tspan":
		default:
			return nil
		}
	}
	return nil
}

// index maps ids to elements. The first element with a given id wins.
func index(root *element) map[string]*element {
	ids := make(map[string]*element)
	var walk func(e *element)
	walk = func(e *element) {
		if id, ok := e.attr("id"); ok && id != "" {
			if _, dup := ids[id]; !dup {
				ids[id] = e
			}
		}
		for _, c := range e.children {
			walk(c)
		}
	}
	walk(root)
	return ids
}
