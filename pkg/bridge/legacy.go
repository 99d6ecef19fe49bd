package bridge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/harun/toolgate/pkg/action"
)

// Legacy handlers for tools that predate the structured pipeline. They
// keep the historical behavior: lenient field lookup with alternate
// names, unknown fields silently ignored.

// LegacySearch handles the old "search" tool. The old payload used either
// "query" or "q" and an optional "limit".
func LegacySearch(raw json.RawMessage) (action.Action, error) {
	query := gjson.GetBytes(raw, "query")
	if !query.Exists() {
		query = gjson.GetBytes(raw, "q")
	}
	if strings.TrimSpace(query.String()) == "" {
		return nil, fmt.Errorf("search: query is required")
	}

	max := int(gjson.GetBytes(raw, "limit").Int())
	if max <= 0 {
		max = 10
	}

	return action.WebSearch{Query: query.String(), MaxResults: max}, nil
}

// LegacyListDir handles the old "list_dir" tool, which maps onto the new
// find_files action with a wildcard pattern.
func LegacyListDir(raw json.RawMessage) (action.Action, error) {
	dir := gjson.GetBytes(raw, "path")
	if !dir.Exists() {
		dir = gjson.GetBytes(raw, "dir")
	}
	root := dir.String()
	if root == "" {
		root = "."
	}
	return action.FindFiles{Pattern: "*", Root: root}, nil
}

// LegacyOpenURL handles the old "open_url" tool. The old payload accepted
// "url" or "href" and tolerated surrounding whitespace.
func LegacyOpenURL(raw json.RawMessage) (action.Action, error) {
	url := gjson.GetBytes(raw, "url")
	if !url.Exists() {
		url = gjson.GetBytes(raw, "href")
	}
	target := strings.TrimSpace(url.String())
	if target == "" {
		return nil, fmt.Errorf("open_url: url is required")
	}
	return action.BrowserNavigate{URL: target}, nil
}
