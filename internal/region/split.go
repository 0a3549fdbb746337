package region

import "strings"

// DelimiterPair holds the two literal marker lines that bound a managed
// region. Markers are stored without their trailing newline.
type DelimiterPair struct {
	Start string
	End   string
}

// Region is a target file divided at its delimiter pair.
type Region struct {
	// Prefix runs from the beginning of the file through the start marker
	// line, including its newline.
	Prefix string

	// Managed is the text strictly between the marker lines.
	Managed string

	// Suffix runs from the first byte of the end marker line to EOF.
	Suffix string
}

// Join reassembles the file. For a Region returned by Split this is the
// original text.
func (r Region) Join() string {
	return r.Prefix + r.Managed + r.Suffix
}

// Replace returns the file text with the managed region swapped for managed.
func (r Region) Replace(managed string) string {
	return r.Prefix + managed + r.Suffix
}

// Split locates pair in text and returns the three parts of the file.
//
// Returns *MissingDelimiterError if either marker line is absent and
// *DelimiterOrderError if the end marker does not come after the start
// marker.
func Split(text string, pair DelimiterPair) (Region, error) {
	startAt, startEnd, ok := findLine(text, pair.Start)
	if !ok {
		return Region{}, &MissingDelimiterError{Which: WhichStart, Marker: pair.Start}
	}
	endAt, _, ok := findLine(text, pair.End)
	if !ok {
		return Region{}, &MissingDelimiterError{Which: WhichEnd, Marker: pair.End}
	}
	if endAt < startEnd {
		return Region{}, &DelimiterOrderError{StartOffset: startAt, EndOffset: endAt}
	}

	return Region{
		Prefix:  text[:startEnd],
		Managed: text[startEnd:endAt],
		Suffix:  text[endAt:],
	}, nil
}

// findLine returns the offsets of the first line matching marker: the start
// of the line and the offset just past its newline (or len(text) when the
// line is the last one and unterminated).
func findLine(text, marker string) (start, end int, ok bool) {
	if marker == "" {
		return 0, 0, false
	}
	for pos := 0; pos < len(text); {
		idx := strings.Index(text[pos:], marker)
		if idx < 0 {
			return 0, 0, false
		}
		at := pos + idx
		lineStart := strings.LastIndexByte(text[:at], '\n') + 1
		lineEnd := len(text)
		if nl := strings.IndexByte(text[at:], '\n'); nl >= 0 {
			lineEnd = at + nl + 1
		}
		if isMarkerLine(text[lineStart:lineEnd], marker) {
			return lineStart, lineEnd, true
		}
		pos = at + len(marker)
	}
	return 0, 0, false
}

// isMarkerLine reports whether line (including any newline) consists of
// optional indentation followed by marker.
func isMarkerLine(line, marker string) bool {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return strings.TrimLeft(line, " \t") == marker
}
