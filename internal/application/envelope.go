package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/ericfisherdev/pwdb/internal/domain/model"
	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

// naiveTimestamp parses ISO-8601 timestamps without a zone offset, as written
// by databases created before offsets were recorded. Fractional seconds are
// optional when parsing.
const naiveTimestamp = "2006-01-02T15:04:05"

// envelopeDocument is the JSON form of the decrypted database.
type envelopeDocument struct {
	Created string   `json:"created"`
	Version string   `json:"version"`
	Entries []string `json:"entries"`
}

func marshalEnvelope(e model.Envelope) ([]byte, error) {
	entries := e.Entries
	if entries == nil {
		entries = []string{}
	}
	data, err := json.Marshal(envelopeDocument{
		Created: e.Created.Format(time.RFC3339Nano),
		Version: e.Version,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return data, nil
}

// unmarshalEnvelope parses a decrypted database. A missing or null entries
// list is an empty store. Unknown top-level keys are ignored.
func unmarshalEnvelope(data []byte) (model.Envelope, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return model.Envelope{}, fmt.Errorf("%w: not a JSON object", driven.ErrMalformedEnvelope)
	}

	var doc envelopeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Envelope{}, fmt.Errorf("%w: %v", driven.ErrMalformedEnvelope, err)
	}

	created, err := parseCreated(doc.Created)
	if err != nil {
		return model.Envelope{}, err
	}

	if !compatibleVersion(doc.Version) {
		return model.Envelope{}, fmt.Errorf("%w: %q (supported: %s)", driven.ErrUnsupportedVersion, doc.Version, model.FormatVersion)
	}

	entries := doc.Entries
	if entries == nil {
		entries = []string{}
	}

	return model.Envelope{
		Created: created,
		Version: doc.Version,
		Entries: entries,
	}, nil
}

func parseCreated(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing created timestamp", driven.ErrMalformedEnvelope)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(naiveTimestamp, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid created timestamp %q", driven.ErrMalformedEnvelope, s)
	}
	return t, nil
}

// compatibleVersion reports whether v shares a major version with FormatVersion.
func compatibleVersion(v string) bool {
	canonical := func(s string) string {
		if !strings.HasPrefix(s, "v") {
			s = "v" + s
		}
		return s
	}
	got := canonical(v)
	if !semver.IsValid(got) {
		return false
	}
	return semver.Major(got) == semver.Major(canonical(model.FormatVersion))
}
