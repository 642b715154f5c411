package encoder

import (
	"bytes"
	"fmt"
)

// preflight runs the cheap structural checks the driver performs before
// paying for a full JSON parse: minimum length, a leading '{', and the
// literal substring "skeleton" somewhere in the first 18 bytes.
func preflight(data []byte) error {
	if len(data) < 16 {
		return newError(ErrCodeInputTooShort, fmt.Errorf("encoder: input is %d bytes, want at least 16", len(data)))
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return newError(ErrCodeNotJSONObject, fmt.Errorf("encoder: input does not begin with '{'"))
	}
	head := data
	if len(head) > 18 {
		head = head[:18]
	}
	if !bytes.Contains(head, []byte("skeleton")) {
		return newError(ErrCodeMissingSkeleton, fmt.Errorf("encoder: input is missing the \"skeleton\" key near the start of the document"))
	}
	return nil
}
