package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/conn-castle/modsync/internal/messages"
)

// ErrInvalid reports a manifest that could not be decoded even after repair.
var ErrInvalid = errors.New("invalid manifest")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes raw manifest text. When the strict decode fails it runs the
// repair pipeline once and retries; repaired reports whether that happened.
// An unrecoverable manifest yields an error wrapping ErrInvalid and the
// original decode error.
func Parse(raw []byte) (m Manifest, repaired bool, err error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	m, err = decode(raw)
	if err == nil {
		return m, false, nil
	}
	fixed, _ := Repair(string(raw))
	m, retryErr := decode([]byte(fixed))
	if retryErr != nil {
		return Manifest{}, false, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return m, true, nil
}

func decode(data []byte) (Manifest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Manifest{}, errors.New(messages.ManifestNotObject)
	}
	var m Manifest
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
