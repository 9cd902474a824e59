package application

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ericfisherdev/pwdb/internal/domain/model"
	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

// recordDocument is the canonical JSON form of a record. The secret is stored
// under "password", the key used by every existing database.
type recordDocument struct {
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

// RecordCodec turns records into opaque tokens and back. A token is the text
// encoding of an authenticated envelope around the record's JSON document.
type RecordCodec struct {
	cipher driven.Cipher
	text   driven.TextCodec
}

// NewRecordCodec creates a RecordCodec that seals under cipher and encodes with text.
func NewRecordCodec(cipher driven.Cipher, text driven.TextCodec) *RecordCodec {
	return &RecordCodec{cipher: cipher, text: text}
}

// Seal serializes, encrypts, and text-encodes r. Fields must be valid UTF-8;
// JSON would otherwise replace bad bytes and the record would not round-trip.
func (c *RecordCodec) Seal(r model.Record) (string, error) {
	for _, f := range model.Fields {
		if !utf8.ValidString(r.Value(f)) {
			return "", fmt.Errorf("seal record: %s: %w", f, driven.ErrInvalidText)
		}
	}

	doc, err := json.Marshal(recordDocument{
		Username: r.Username,
		Password: r.Secret,
		URL:      r.URL,
		Notes:    r.Notes,
	})
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	envelope, err := c.cipher.Encrypt(doc)
	clear(doc)
	if err != nil {
		return "", fmt.Errorf("encrypt record: %w", err)
	}
	return c.text.Encode(envelope), nil
}

// Open reverses Seal. It returns an error wrapping driven.ErrMalformedEncoding,
// driven.ErrAuthentication, or driven.ErrMalformedRecord depending on which
// stage rejected the token.
func (c *RecordCodec) Open(token string) (model.Record, error) {
	envelope, err := c.text.Decode(token)
	if err != nil {
		return model.Record{}, fmt.Errorf("decode record: %w", err)
	}

	plaintext, err := c.cipher.Decrypt(envelope)
	if err != nil {
		return model.Record{}, fmt.Errorf("decrypt record: %w", err)
	}
	defer clear(plaintext)

	doc, err := parseRecordDocument(plaintext)
	if err != nil {
		return model.Record{}, err
	}
	return model.Record{
		Username: doc.Username,
		Secret:   doc.Password,
		URL:      doc.URL,
		Notes:    doc.Notes,
	}, nil
}

// parseRecordDocument accepts exactly one JSON object with no keys beyond the
// four record fields. Missing keys default to "".
func parseRecordDocument(data []byte) (recordDocument, error) {
	var doc recordDocument

	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return doc, fmt.Errorf("%w: not a JSON object", driven.ErrMalformedRecord)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return recordDocument{}, fmt.Errorf("%w: %v", driven.ErrMalformedRecord, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return recordDocument{}, fmt.Errorf("%w: trailing data after record", driven.ErrMalformedRecord)
	}
	return doc, nil
}
