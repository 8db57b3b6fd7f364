package extract

import (
	"sort"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type byteRange struct {
	start uint
	end   uint
}

type elementKey struct {
	node uintptr
	kind ElementKind
}

// Source owns the text currently bound to an extractor together with all
// per-source caches: the text-slice cache, the processed-node set and the
// element cache. A Source instance belongs to exactly one analysis request;
// InitializeSource resets every cache atomically before a new text is bound.
type Source struct {
	mu sync.Mutex

	text     []byte
	encoding string

	// lineOffsets[i] is the byte offset of the first byte of line i+1.
	lineOffsets []int

	sliceCache map[byteRange]string
	processed  map[uintptr]struct{}
	positions  map[byteRange]struct{}
	elements   map[elementKey]*CodeElement
}

// NewSource returns an unbound Source. InitializeSource must be called
// before any extraction.
func NewSource() *Source {
	return &Source{}
}

// InitializeSource binds text to the extractor and rebuilds the line-offset
// index. All caches are cleared; nothing cached for a previous source
// survives the call.
func (s *Source) InitializeSource(text []byte, encoding string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	s.encoding = encoding
	s.lineOffsets = buildLineOffsets(text)
	s.sliceCache = make(map[byteRange]string)
	s.processed = make(map[uintptr]struct{})
	s.positions = make(map[byteRange]struct{})
	s.elements = make(map[elementKey]*CodeElement)
}

func buildLineOffsets(text []byte) []int {
	offsets := make([]int, 1, 64)
	offsets[0] = 0
	for i, b := range text {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// Text returns the bound source text.
func (s *Source) Text() []byte { return s.text }

// Encoding returns the encoding name the bound text was decoded from.
func (s *Source) Encoding() string { return s.encoding }

// LineCount returns the number of lines in the bound text.
func (s *Source) LineCount() int { return len(s.lineOffsets) }

// LineCol converts a byte offset into a 1-based (line, column) pair using
// binary search over the line-offset index.
func (s *Source) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	i := sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > offset
	})
	line = i
	col = offset - s.lineOffsets[i-1] + 1
	return line, col
}

// ExtractText returns the source text covered by node. The primary strategy
// slices the original text by the node's byte span; if the span is out of
// bounds the line/column fallback reconstructs the text from the line index.
// The result is cached by byte range, so repeated calls for the same span
// return the identical cached value. ExtractText never fails: an empty
// string is returned when the span is empty or both strategies come up
// short.
func (s *Source) ExtractText(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= end {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := byteRange{start, end}
	if cached, ok := s.sliceCache[r]; ok {
		return cached
	}

	var out string
	if int(end) <= len(s.text) {
		out = string(s.text[start:end])
	} else {
		out = s.sliceByPosition(node)
	}
	s.sliceCache[r] = out
	return out
}

// sliceByPosition is the fallback strategy: slice by the node's row/column
// span using the line-offset index. Callers hold s.mu.
func (s *Source) sliceByPosition(node *sitter.Node) string {
	startRow := int(node.StartPosition().Row)
	endRow := int(node.EndPosition().Row)
	if startRow >= len(s.lineOffsets) {
		return ""
	}
	startOff := s.lineOffsets[startRow] + int(node.StartPosition().Column)
	var endOff int
	if endRow < len(s.lineOffsets) {
		endOff = s.lineOffsets[endRow] + int(node.EndPosition().Column)
	} else {
		endOff = len(s.text)
	}
	if startOff > len(s.text) {
		return ""
	}
	if endOff > len(s.text) {
		endOff = len(s.text)
	}
	if startOff >= endOff {
		return ""
	}
	return string(s.text[startOff:endOff])
}

// markProcessed records a node identity and reports whether it was already
// present. Used by the iterative strategy to suppress duplicate emission when
// overlapping queries visit the same node twice within one parse.
func (s *Source) markProcessed(id uintptr) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.processed[id]; seen {
		return true
	}
	s.processed[id] = struct{}{}
	return false
}

// markPosition records a (start_byte, end_byte) tuple and reports whether it
// was already present. Markup grammars may re-synthesize node objects for
// equivalent spans, so position tuples are the only stable dedup key there.
func (s *Source) markPosition(start, end uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := byteRange{start, end}
	if _, seen := s.positions[r]; seen {
		return true
	}
	s.positions[r] = struct{}{}
	return false
}

// cachedElement returns a previously built element for (node, kind), if any.
func (s *Source) cachedElement(id uintptr, kind ElementKind) (*CodeElement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.elements[elementKey{id, kind}]
	return el, ok
}

func (s *Source) storeElement(id uintptr, kind ElementKind, el *CodeElement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements[elementKey{id, kind}] = el
}
