package core

import "encoding/json"

// BackendKind tags which backend produced a ProofArtifact. Unknown backend
// strings decode to BackendUnknown so future backend additions stay
// forward-compatible with older verifiers that only inspect the tag.
type BackendKind string

const (
	BackendStark   BackendKind = "stark"
	BackendFold    BackendKind = "fold"
	BackendUnknown BackendKind = "unknown"
)

// knownBackends lists the tags that decode to themselves; anything else
// becomes BackendUnknown.
var knownBackends = map[string]BackendKind{
	string(BackendStark): BackendStark,
	string(BackendFold):  BackendFold,
}

// UnmarshalJSON implements the "unknown tag -> Unknown" tolerance required
// by the serialization boundary (C10).
func (k *BackendKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if known, ok := knownBackends[s]; ok {
		*k = known
	} else {
		*k = BackendUnknown
	}
	return nil
}

// MarshalJSON encodes the backend tag verbatim.
func (k BackendKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

// ProofArtifact is the versioned envelope every backend emits: a backend
// tag, the manifest root it proves against, opaque proof bytes, and a
// free-form metadata object that must tolerate unknown keys on decode.
type ProofArtifact struct {
	Backend      BackendKind     `json:"backend"`
	ManifestRoot [32]byte        `json:"manifest_root"`
	ProofBytes   []byte          `json:"proof_bytes"`
	Meta         json.RawMessage `json:"meta,omitempty"`
}

// NewStreamArtifact builds a ProofArtifact whose proof payload lives in a
// side file rather than ProofBytes: Meta carries "stream_format" (the
// stream's wire tag, e.g. fold.StreamFormat) and "stream_path" (where to
// find it), the two keys the fold streaming path and its readers agree on.
func NewStreamArtifact(backend BackendKind, manifestRoot [32]byte, streamFormat, streamPath string) (ProofArtifact, error) {
	meta, err := json.Marshal(map[string]string{
		"stream_format": streamFormat,
		"stream_path":   streamPath,
	})
	if err != nil {
		return ProofArtifact{}, err
	}
	return ProofArtifact{Backend: backend, ManifestRoot: manifestRoot, Meta: meta}, nil
}

// MetaGet extracts a string-valued metadata key, returning ok=false if the
// key is absent or not a string. Used for keys like "stream_format" and
// "stream_path" that the folding streaming path attaches to Meta.
func (a *ProofArtifact) MetaGet(key string) (string, bool) {
	if len(a.Meta) == 0 {
		return "", false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(a.Meta, &m); err != nil {
		return "", false
	}
	raw, ok := m[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
