package strstack

import (
	"encoding/json"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
	"gopkg.in/yaml.v3"
)

// A Stack serializes as a plain sequence of strings; offsets and the
// backing buffer never appear on the wire.

func (s *Stack) strings() []string {
	out := make([]string, 0, s.Len())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

func (s *Stack) setStrings(vs []string) {
	s.Clear()
	for _, v := range vs {
		s.Push(v)
	}
}

// MarshalJSON implements json.Marshaler.
func (s *Stack) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.strings())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Stack) UnmarshalJSON(data []byte) error {
	var vs []string
	if err := json.Unmarshal(data, &vs); err != nil {
		return err
	}
	s.setStrings(vs)
	return nil
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (s *Stack) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	first := true
	for v := range s.All() {
		if !first {
			w.RawByte(',')
		}
		first = false
		w.String(v)
	}
	w.RawByte(']')
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (s *Stack) UnmarshalEasyJSON(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		return
	}
	s.Clear()
	l.Delim('[')
	for !l.IsDelim(']') {
		s.Push(l.String())
		l.WantComma()
	}
	l.Delim(']')
}

// MarshalYAML implements yaml.Marshaler.
func (s *Stack) MarshalYAML() (any, error) {
	return s.strings(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Stack) UnmarshalYAML(node *yaml.Node) error {
	var vs []string
	if err := node.Decode(&vs); err != nil {
		return err
	}
	s.setStrings(vs)
	return nil
}
