package region

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var headerPair = DelimiterPair{
	Start: "// -------- TEXT AFTER THIS AUTOGENERATED - DO NOT EDIT --------",
	End:   "// -------- TEXT BEFORE THIS AUTOGENERATED - DO NOT EDIT --------",
}

var testsPair = DelimiterPair{
	Start: "// START TESTS",
	End:   "// END TESTS",
}

const headerFile = `#ifndef _KSTATE_H_INCLUDED_
#define _KSTATE_H_INCLUDED_

// -------- TEXT AFTER THIS AUTOGENERATED - DO NOT EDIT --------
// Autogenerated by regionsync on 2013-01-14 (Mon 14 Jan 2013) at 11:20
extern int kstate_subscribe(const char *name);

// -------- TEXT BEFORE THIS AUTOGENERATED - DO NOT EDIT --------

#endif /* _KSTATE_H_INCLUDED_ */
`

func TestSplit_Parts(t *testing.T) {
	r, err := Split(headerFile, headerPair)
	require.NoError(t, err)

	assert.Equal(t, "#ifndef _KSTATE_H_INCLUDED_\n#define _KSTATE_H_INCLUDED_\n\n"+
		headerPair.Start+"\n", r.Prefix)
	assert.Equal(t, "// Autogenerated by regionsync on 2013-01-14 (Mon 14 Jan 2013) at 11:20\n"+
		"extern int kstate_subscribe(const char *name);\n\n", r.Managed)
	assert.Equal(t, headerPair.End+"\n\n#endif /* _KSTATE_H_INCLUDED_ */\n", r.Suffix)
}

func TestSplit_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
		pair DelimiterPair
	}{
		{"header file", headerFile, headerPair},
		{"empty managed", "a\n// START TESTS\n// END TESTS\nb\n", testsPair},
		{"indented markers", "int main(void)\n{\n  // START TESTS\n  tcase_add_test(tc_core, a);\n  // END TESTS\n}\n", testsPair},
		{"no trailing newline", "// START TESTS\nx\n// END TESTS", testsPair},
		{"crlf", "top\r\n// START TESTS\r\nx\r\n// END TESTS\r\nbottom\r\n", testsPair},
		{"markers at edges", "// START TESTS\n// END TESTS\n", testsPair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Split(tt.text, tt.pair)
			require.NoError(t, err)
			assert.Equal(t, tt.text, r.Join())
			assert.Equal(t, tt.text, r.Replace(r.Managed))
		})
	}
}

func TestSplit_IndentedMarkerSuffixKeepsIndent(t *testing.T) {
	text := "{\n  // START TESTS\n  old;\n  // END TESTS\n}\n"
	r, err := Split(text, testsPair)
	require.NoError(t, err)

	assert.Equal(t, "{\n  // START TESTS\n", r.Prefix)
	assert.Equal(t, "  old;\n", r.Managed)
	assert.Equal(t, "  // END TESTS\n}\n", r.Suffix)
}

func TestSplit_MarkerMustBeWholeLine(t *testing.T) {
	// The marker text appears inside another line first; only the real
	// marker line counts.
	text := "x = \"// START TESTS\";\n// START TESTS\nmid\n// END TESTS\n"
	r, err := Split(text, testsPair)
	require.NoError(t, err)
	assert.Equal(t, "mid\n", r.Managed)
}

func TestSplit_MissingStart(t *testing.T) {
	_, err := Split("nothing here\n// END TESTS\n", testsPair)
	require.Error(t, err)

	var missing *MissingDelimiterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, WhichStart, missing.Which)
	assert.ErrorIs(t, err, ErrMissingDelimiter)
}

func TestSplit_MissingEnd(t *testing.T) {
	_, err := Split("// START TESTS\nstuff\n", testsPair)

	var missing *MissingDelimiterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, WhichEnd, missing.Which)
	assert.Contains(t, err.Error(), "end delimiter")
}

func TestSplit_ReversedOrder(t *testing.T) {
	_, err := Split("// END TESTS\nstuff\n// START TESTS\n", testsPair)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDelimiterOrder)

	var order *DelimiterOrderError
	require.True(t, errors.As(err, &order))
	assert.Equal(t, 0, order.EndOffset)
	assert.Equal(t, len("// END TESTS\nstuff\n"), order.StartOffset)
}

func TestSplit_EmptyMarker(t *testing.T) {
	_, err := Split("anything\n", DelimiterPair{Start: "", End: "// END TESTS"})
	assert.ErrorIs(t, err, ErrMissingDelimiter)
}
