package encoder

import (
	"fmt"

	"github.com/waozixyz/spine2krb/internal/jsontree"
	"github.com/waozixyz/spine2krb/internal/wire"
)

// writeHeader emits hash, version, width, height, and the always-false
// nonessential-data flag. A missing hash or version is fatal — the
// original's own check never fires because its default is a non-null
// empty string, a historical bug this rewrite does not carry forward;
// presence is tested properly via StringOK.
func writeHeader(s *wire.Sink, skeleton jsontree.Node) error {
	hash, hashOK := skeleton.Get("hash").StringOK()
	if !hashOK {
		return newError(ErrCodeMissingHash, fmt.Errorf("encoder: skeleton.hash is missing"))
	}
	version, versionOK := skeleton.Get("spine").StringOK()
	if !versionOK {
		return newError(ErrCodeMissingVersion, fmt.Errorf("encoder: skeleton.spine is missing"))
	}

	s.String(hash, true)
	s.String(version, true)
	s.Float(skeleton.Get("width").Float32(0))
	s.Float(skeleton.Get("height").Float32(0))
	s.Bool(false) // nonessential data is never emitted
	return nil
}
