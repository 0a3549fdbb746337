package syncer

import (
	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff renders the change from old to new managed text for target.
func unifiedDiff(target, old, new string) string {
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(old),
		B:        difflib.SplitLines(new),
		FromFile: target + " (current)",
		ToFile:   target + " (generated)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return ""
	}
	return text
}
