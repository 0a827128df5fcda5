package object

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// decodeJSON decodes a single JSON document into v. Numbers are kept as json.Number so
// integers reach objects as integers.
func decodeJSON(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after the JSON document")
	}
	return nil
}
