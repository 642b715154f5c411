// Package encoder drives the full JSON-to-binary-skeleton pipeline: it
// owns the output buffer and the fixed emission order that makes the
// cross-reference name tables in internal/skel line up with the indices
// the wire format carries.
package encoder

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/waozixyz/spine2krb/internal/atlas"
	"github.com/waozixyz/spine2krb/internal/jsontree"
	"github.com/waozixyz/spine2krb/internal/skel"
	"github.com/waozixyz/spine2krb/internal/wire"
)

// Options configures one Encode call. Logger is nil-safe: a nil value
// is replaced with zap's no-op logger.
type Options struct {
	Logger *zap.Logger
}

// Encoder holds no mutable state between calls; its only field is the
// logger a caller wants progress lines sent to. It exists so embedders
// can inject a logger once rather than passing Options to every call —
// the replacement for the historical static buffer/atlas-set pair.
type Encoder struct {
	logger *zap.Logger
}

// New constructs an Encoder. A nil logger is replaced with zap's no-op
// logger, so callers that don't care about progress output can pass
// Options{} or call Encode directly.
func New(opts Options) *Encoder {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Encoder{logger: logger}
}

// Encode is the package-level entry point for callers with no need to
// reuse a logger across calls.
func Encode(jsonBytes, atlasBytes []byte) ([]byte, error) {
	return New(Options{}).Encode(jsonBytes, atlasBytes)
}

// Result carries the encoded bytes plus the name-table sizes a caller's
// summary output wants, without re-parsing the output.
type Result struct {
	Bytes          []byte
	BoneCount      int
	SlotCount      int
	SkinCount      int
	AnimationCount int
}

// Encode converts one Spine 3.8 JSON skeleton document (plus an optional
// atlas manifest) into the compact binary skeleton format. On failure
// the returned error is always a *EncodeError; the returned byte slice
// is nil and must not be interpreted as partial output.
func (e *Encoder) Encode(jsonBytes, atlasBytes []byte) ([]byte, error) {
	result, err := e.EncodeWithResult(jsonBytes, atlasBytes)
	if err != nil {
		return nil, err
	}
	return result.Bytes, nil
}

// EncodeWithResult is Encode plus the counts a CLI summary wants.
func (e *Encoder) EncodeWithResult(jsonBytes, atlasBytes []byte) (Result, error) {
	if err := preflight(jsonBytes); err != nil {
		return Result{}, err
	}

	root, err := jsontree.Decode(jsonBytes)
	if err != nil {
		return Result{}, newError(ErrCodeJSONParseFailure, fmt.Errorf("encoder: %w", err))
	}
	skeleton := root.Get("skeleton")

	idx := atlas.Parse(atlasBytes)

	s := wire.NewSink(make([]byte, 0, len(jsonBytes)*2))

	e.logger.Info("writing header")
	if err := writeHeader(s, skeleton); err != nil {
		return Result{}, err
	}

	bonesNode := root.Get("bones")
	if len(bonesNode.Array()) == 0 {
		return Result{}, newError(ErrCodeMissingBones, fmt.Errorf("encoder: \"bones\" is missing or empty"))
	}
	e.logger.Info("writing bones")
	bones, err := skel.ResolveBones(bonesNode)
	if err != nil {
		return Result{}, newError(ErrCodeUnresolvedBone, err)
	}
	skel.WriteBones(s, bones)

	slotsNode := root.Get("slots")
	if len(slotsNode.Array()) == 0 {
		return Result{}, newError(ErrCodeMissingSlots, fmt.Errorf("encoder: \"slots\" is missing or empty"))
	}
	e.logger.Info("writing slots")
	slots, err := skel.WriteSlots(s, slotsNode, bones)
	if err != nil {
		return Result{}, newError(ErrCodeUnknownSlotBone, err)
	}

	e.logger.Info("writing ik constraints")
	ik, err := skel.WriteIK(s, root.Get("ik"), bones)
	if err != nil {
		return Result{}, newError(ErrCodeIKBase, err)
	}

	e.logger.Info("writing transform constraints")
	transform, err := skel.WriteTransform(s, root.Get("transform"), bones)
	if err != nil {
		return Result{}, newError(ErrCodeTransformBase, err)
	}

	e.logger.Info("writing path constraints")
	paths, err := skel.WritePath(s, root.Get("path"), bones, slots)
	if err != nil {
		return Result{}, newError(ErrCodePathBase, err)
	}

	e.logger.Info("writing skins")
	skinsRaw, err := jsontree.RawOf(jsonBytes, "skins")
	if err != nil {
		return Result{}, newError(ErrCodeSkinsMissingDefault, err)
	}
	skins, err := skel.WriteSkins(s, skinsRaw, slots, idx)
	if err != nil {
		if errors.Is(err, skel.ErrNoDefaultSkin) {
			return Result{}, newError(ErrCodeSkinsMissingDefault, err)
		}
		return Result{}, newError(ErrCodeDefaultSkinBase, err)
	}

	e.logger.Info("writing events")
	eventsRaw, err := jsontree.RawOf(jsonBytes, "events")
	if err != nil {
		return Result{}, newError(ErrCodeAnimationBase, err)
	}
	events, err := skel.WriteEvents(s, eventsRaw)
	if err != nil {
		return Result{}, newError(ErrCodeAnimationBase, err)
	}

	tables := &skel.Tables{
		Bones:     bones,
		Slots:     slots,
		IK:        ik,
		Transform: transform,
		Path:      paths,
		Skins:     skins,
		Events:    events,
	}

	animsRaw, err := jsontree.RawOf(jsonBytes, "animations")
	if err != nil {
		return Result{}, newError(ErrCodeAnimationBase, err)
	}
	animEntries, err := jsontree.OrderedEntries(animsRaw)
	if err != nil {
		return Result{}, newError(ErrCodeAnimationBase, fmt.Errorf("encoder: animations: %w", err))
	}
	s.Varint(uint32(len(animEntries)), true)
	for _, entry := range animEntries {
		e.logger.Info("writing animation", zap.String("animation", entry.Key))
		s.String(entry.Key, true)
		if err := skel.WriteAnimation(s, entry.Raw, tables); err != nil {
			return Result{}, newError(ErrCodeAnimationBase, fmt.Errorf("encoder: animation %q: %w", entry.Key, err))
		}
	}

	return Result{
		Bytes:          s.Bytes(),
		BoneCount:      len(bones),
		SlotCount:      len(slots),
		SkinCount:      len(skins),
		AnimationCount: len(animEntries),
	}, nil
}
