// Package container implements the σ_k and manifest serialization boundary
// (C10): format dispatch by case-insensitive file extension across JSON,
// CBOR, and newline-delimited JSON, plus the manifest container's
// {version, root, n_leaves} wire shape.
package container

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/merkle"
	"github.com/logannye/sezkp/pkg/sezkp"
)

// WriteBlocksChecksummed encodes blocks under format into a buffer, writes
// the buffer to w, and returns a SHA3-256 checksum of the bytes written —
// a storage-level integrity guard a caller can persist alongside the
// container path and check on the next read.
func WriteBlocksChecksummed(w io.Writer, format Format, blocks []*core.BlockSummary) ([32]byte, error) {
	var buf bytes.Buffer
	if err := WriteBlocks(&buf, format, blocks); err != nil {
		return [32]byte{}, err
	}
	sum := Checksum(buf.Bytes())
	if _, err := w.Write(buf.Bytes()); err != nil {
		return [32]byte{}, sezkp.Wrap(sezkp.ErrIO, "container: writing checksummed block container", err)
	}
	return sum, nil
}

// ReadBlocksVerifyChecksum reads r fully, checks it against want before
// decoding, and only then parses it under format.
func ReadBlocksVerifyChecksum(r io.Reader, format Format, want [32]byte) ([]*core.BlockSummary, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, sezkp.Wrap(sezkp.ErrIO, "container: reading checksummed block container", err)
	}
	if !VerifyChecksum(raw, want) {
		return nil, sezkp.New(sezkp.ErrManifestMismatch, "container: block container checksum mismatch")
	}
	return ReadBlocks(bytes.NewReader(raw), format)
}

// Format is a σ_k/manifest container's wire encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatCBOR   Format = "cbor"
	FormatNDJSON Format = "ndjson"
)

// DetectFormat dispatches on path's extension, case-insensitively, per the
// serialization boundary's required JSON/CBOR/NDJSON coverage.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".cbor":
		return FormatCBOR, nil
	case ".ndjson":
		return FormatNDJSON, nil
	default:
		return "", sezkp.New(sezkp.ErrUnsupportedVersion,
			"container: unrecognized extension "+filepath.Ext(path))
	}
}

// WriteBlocks serializes blocks to w under format: a single JSON array, a
// single CBOR-encoded array, or one NDJSON object per line. NDJSON is the
// shape the fold streaming path reads/writes by preference, since a line at
// a time never requires buffering the whole σ_k sequence.
func WriteBlocks(w io.Writer, format Format, blocks []*core.BlockSummary) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(blocks)
	case FormatCBOR:
		return cbor.NewEncoder(w).Encode(blocks)
	case FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, b := range blocks {
			if err := enc.Encode(b); err != nil {
				return err
			}
		}
		return nil
	default:
		return sezkp.New(sezkp.ErrUnsupportedVersion, "container: unknown format "+string(format))
	}
}

// ReadBlocks deserializes a σ_k container from r under format.
func ReadBlocks(r io.Reader, format Format) ([]*core.BlockSummary, error) {
	switch format {
	case FormatJSON:
		var blocks []*core.BlockSummary
		if err := json.NewDecoder(r).Decode(&blocks); err != nil {
			return nil, sezkp.Wrap(sezkp.ErrIO, "container: decoding JSON block container", err)
		}
		return blocks, nil
	case FormatCBOR:
		var blocks []*core.BlockSummary
		if err := cbor.NewDecoder(r).Decode(&blocks); err != nil {
			return nil, sezkp.Wrap(sezkp.ErrIO, "container: decoding CBOR block container", err)
		}
		return blocks, nil
	case FormatNDJSON:
		var blocks []*core.BlockSummary
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			var b core.BlockSummary
			if err := json.Unmarshal(line, &b); err != nil {
				return nil, sezkp.Wrap(sezkp.ErrIO, "container: decoding NDJSON block line", err)
			}
			blocks = append(blocks, &b)
		}
		if err := scanner.Err(); err != nil {
			return nil, sezkp.Wrap(sezkp.ErrIO, "container: scanning NDJSON block container", err)
		}
		return blocks, nil
	default:
		return nil, sezkp.New(sezkp.ErrUnsupportedVersion, "container: unknown format "+string(format))
	}
}

// manifestWire is the JSON/NDJSON wire shape for a manifest container: the
// root is hex-encoded, since a raw [32]byte digest marshals as an unreadable
// JSON number array otherwise.
type manifestWire struct {
	Version uint16 `json:"version" cbor:"version"`
	Root    string `json:"root" cbor:"root"`
	NLeaves uint32 `json:"n_leaves" cbor:"n_leaves"`
}

// WriteManifest serializes a manifest commitment to w under format.
func WriteManifest(w io.Writer, format Format, m merkle.CommitManifest) error {
	wire := manifestWire{Version: m.Version, Root: hex.EncodeToString(m.Root[:]), NLeaves: m.NLeaves}
	switch format {
	case FormatJSON, FormatNDJSON:
		return json.NewEncoder(w).Encode(wire)
	case FormatCBOR:
		return cbor.NewEncoder(w).Encode(wire)
	default:
		return sezkp.New(sezkp.ErrUnsupportedVersion, "container: unknown format "+string(format))
	}
}

// ReadManifest deserializes a manifest container from r under format.
func ReadManifest(r io.Reader, format Format) (merkle.CommitManifest, error) {
	var wire manifestWire
	var err error
	switch format {
	case FormatJSON, FormatNDJSON:
		err = json.NewDecoder(r).Decode(&wire)
	case FormatCBOR:
		err = cbor.NewDecoder(r).Decode(&wire)
	default:
		return merkle.CommitManifest{}, sezkp.New(sezkp.ErrUnsupportedVersion, "container: unknown format "+string(format))
	}
	if err != nil {
		return merkle.CommitManifest{}, sezkp.Wrap(sezkp.ErrIO, "container: decoding manifest container", err)
	}
	rootBytes, err := hex.DecodeString(wire.Root)
	if err != nil || len(rootBytes) != merkle.DigestSize {
		return merkle.CommitManifest{}, sezkp.New(sezkp.ErrManifestMismatch, "container: malformed manifest root")
	}
	var root merkle.Digest
	copy(root[:], rootBytes)
	return merkle.CommitManifest{Version: wire.Version, Root: root, NLeaves: wire.NLeaves}, nil
}
