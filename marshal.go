package smartstr

import (
	"encoding/json"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/smartstr/pascal"
)

// Serialized form is the content only and is identical for both
// variants; round-tripping never records which variant held the value.
// In-place decoding overwrites content: a heap-backed receiver stays
// heap-backed even when the new content would fit inline, an inline
// receiver promotes when it must.

func (s *SmartString) setString(v string) {
	if s.heap {
		s.buf = append(s.buf[:0], v...)
		return
	}
	s.stack.Clear()
	if s.stack.TryPushString(v) != nil {
		s.toHeap(len(v))
		s.buf = append(s.buf, v...)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s *SmartString) MarshalText() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SmartString) UnmarshalText(b []byte) error {
	if err := pascal.ValidateUTF8(b); err != nil {
		return err
	}
	s.setString(string(b))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s *SmartString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SmartString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s.setString(v)
	return nil
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (s *SmartString) MarshalEasyJSON(w *jwriter.Writer) {
	w.String(s.String())
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (s *SmartString) UnmarshalEasyJSON(l *jlexer.Lexer) {
	v := l.String()
	if !l.Ok() {
		return
	}
	s.setString(v)
}

// MarshalYAML implements yaml.Marshaler.
func (s *SmartString) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *SmartString) UnmarshalYAML(node *yaml.Node) error {
	var v string
	if err := node.Decode(&v); err != nil {
		return err
	}
	s.setString(v)
	return nil
}
