package postgres

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"Hearth/internal/core/posts"
)

const cursorDelimiter = "::"

var (
	errCursorEncoding  = errors.New("invalid cursor encoding")
	errCursorFormat    = errors.New("invalid cursor format")
	errCursorSignature = errors.New("invalid cursor signature")
	errCursorTimestamp = errors.New("invalid cursor timestamp")
)

// feedCursor is the keyset position after the last post of a page.
type feedCursor struct {
	CreatedAt time.Time
	ID        string
}

// cursorCodec signs cursors with HMAC-SHA256 so clients cannot forge
// positions. Format: base64url(createdAt::id::hexsig).
type cursorCodec struct {
	secret []byte
}

func newCursorCodec(secret string) *cursorCodec {
	return &cursorCodec{secret: []byte(secret)}
}

func (c *cursorCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *cursorCodec) encode(post *posts.Post) string {
	payload := post.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorDelimiter + post.ID
	signed := payload + cursorDelimiter + c.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(signed))
}

func (c *cursorCodec) decode(cursor string) (*feedCursor, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, errCursorEncoding
	}

	parts := strings.Split(string(decoded), cursorDelimiter)
	if len(parts) != 3 {
		return nil, errCursorFormat
	}

	payload := parts[0] + cursorDelimiter + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(c.sign(payload))) {
		return nil, errCursorSignature
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, errCursorTimestamp
	}
	if parts[1] == "" {
		return nil, errCursorFormat
	}

	return &feedCursor{CreatedAt: createdAt.UTC(), ID: parts[1]}, nil
}
