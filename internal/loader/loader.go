// Package loader reads source files and decodes them against an ordered list
// of candidate encodings. UTF-8 and UTF-8 with BOM are tried first, then the
// locale-specific fallbacks (Shift_JIS, GBK) and finally Latin-1, which
// always succeeds byte-for-byte.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// ErrUndecodable is returned when every configured encoding fails.
var ErrUndecodable = errors.New("no configured encoding can decode file")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DefaultEncodings is the default fallback order.
var DefaultEncodings = []string{"utf-8", "shift_jis", "gbk", "latin-1"}

// SourceUnit is one decoded source text entering the engine. It is owned by
// a single analysis invocation and never mutated after creation.
type SourceUnit struct {
	Path       string
	LanguageID string

	// Raw holds the undecoded file bytes; Text holds the UTF-8 text the
	// parser and extractor operate on. For UTF-8 input the two share the
	// same byte offsets.
	Raw  []byte
	Text []byte

	Encoding string
	Size     int64
	ModTime  time.Time
}

// Loader decodes files using a configurable encoding order.
type Loader struct {
	encodings []string
}

// New returns a Loader using the given encoding order, or DefaultEncodings
// when the list is empty.
func New(encodings []string) *Loader {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}
	return &Loader{encodings: encodings}
}

// Load reads and decodes the file at path.
func (l *Loader) Load(path string) (*SourceUnit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text, encName, err := Decode(raw, l.encodings)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &SourceUnit{
		Path:     path,
		Raw:      raw,
		Text:     text,
		Encoding: encName,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}, nil
}

// FromString wraps inline code as a SourceUnit without touching the disk.
func (l *Loader) FromString(code, languageID string) *SourceUnit {
	b := []byte(code)
	return &SourceUnit{
		Path:       "<inline>",
		LanguageID: languageID,
		Raw:        b,
		Text:       b,
		Encoding:   "utf-8",
		Size:       int64(len(b)),
		ModTime:    time.Now(),
	}
}

// Decode tries each encoding in order and returns the first clean decode.
// A decode that produces replacement runes counts as a failure so a
// Shift_JIS file is not silently mangled by an earlier candidate.
func Decode(raw []byte, order []string) ([]byte, string, error) {
	for _, name := range order {
		switch strings.ToLower(name) {
		case "utf-8", "utf-8-bom":
			trimmed := bytes.TrimPrefix(raw, utf8BOM)
			if utf8.Valid(trimmed) {
				if len(trimmed) != len(raw) {
					return trimmed, "utf-8-bom", nil
				}
				return trimmed, "utf-8", nil
			}
		default:
			enc := lookupEncoding(name)
			if enc == nil {
				continue
			}
			decoded, err := enc.NewDecoder().Bytes(raw)
			if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
				continue
			}
			return decoded, name, nil
		}
	}
	return nil, "", ErrUndecodable
}

// KnownEncoding reports whether name identifies an encoding Decode can
// attempt, including aliases like "sjis" or "iso-8859-1".
func KnownEncoding(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf-8-bom":
		return true
	}
	return lookupEncoding(name) != nil
}

func lookupEncoding(name string) encoding.Encoding {
	switch strings.ToLower(name) {
	case "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS
	case "gbk", "gb2312":
		return simplifiedchinese.GBK
	case "latin-1", "iso-8859-1":
		return charmap.ISO8859_1
	case "euc-jp":
		return japanese.EUCJP
	default:
		return nil
	}
}
