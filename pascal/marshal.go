package pascal

import (
	"encoding/json"
	"fmt"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
	"gopkg.in/yaml.v3"
)

// Serialized form is the content only; capacity and byte-level layout
// never appear on the wire. Incoming content longer than the
// receiver's capacity fails with a length-oriented error and leaves
// the receiver unchanged.

func (p *String) setChecked(v string) error {
	if len(v) > int(p.cap) {
		return fmt.Errorf("%w: %d bytes exceed capacity %d", ErrTooLong, len(v), p.cap)
	}
	p.Clear()
	return p.TryPushString(v)
}

// MarshalText implements encoding.TextMarshaler.
func (p *String) MarshalText() ([]byte, error) {
	return p.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The receiver
// keeps its capacity; build it with New before decoding into it.
func (p *String) UnmarshalText(b []byte) error {
	if off := invalidOffset(b); off >= 0 {
		return &InvalidUTF8Error{Offset: off}
	}
	return p.setChecked(string(b))
}

// MarshalJSON implements json.Marshaler.
func (p *String) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *String) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return p.setChecked(v)
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (p *String) MarshalEasyJSON(w *jwriter.Writer) {
	w.String(p.String())
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (p *String) UnmarshalEasyJSON(l *jlexer.Lexer) {
	v := l.String()
	if !l.Ok() {
		return
	}
	if err := p.setChecked(v); err != nil {
		l.AddError(err)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (p *String) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *String) UnmarshalYAML(node *yaml.Node) error {
	var v string
	if err := node.Decode(&v); err != nil {
		return err
	}
	return p.setChecked(v)
}
