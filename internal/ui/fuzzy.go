package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"multicombo/internal/catalog"
)

// closestOption returns the best fuzzy match for query among options, used to
// suggest an alternative when list filtering leaves nothing visible.
func closestOption(options []catalog.Option, query string) (catalog.Option, bool) {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" || len(options) == 0 {
		return catalog.Option{}, false
	}
	targets := make([]string, len(options))
	for i, opt := range options {
		targets[i] = strings.ToLower(opt.Label)
	}
	matches := fuzzy.Find(query, targets)
	if len(matches) == 0 {
		return catalog.Option{}, false
	}
	idx := matches[0].Index
	if idx < 0 || idx >= len(options) {
		return catalog.Option{}, false
	}
	return options[idx], true
}
