package utm

import (
	"net/url"
	"strings"

	"utmforge/pkg/model"
)

// queryPair is a single key=value entry of a query string. A slice of pairs
// keeps the insertion order that url.Values would lose.
type queryPair struct {
	key   string
	value string
}

type queryPairs []queryPair

// set overwrites the value in place when the key already exists, otherwise
// appends. Existing keys keep their original position.
func (q queryPairs) set(key, value string) queryPairs {
	for i := range q {
		if q[i].key == key {
			q[i].value = value
			return q
		}
	}
	return append(q, queryPair{key: key, value: value})
}

// Build merges the record's UTM parameters into the base URL's query string.
// Existing unrelated parameters are preserved in order, colliding keys are
// overwritten with the record's values, and empty record fields never touch
// the query. Build never fails: an empty base yields an empty string and an
// unparseable base degrades to the normalized input. Neither argument is
// mutated, and identical inputs always produce byte-identical output.
func Build(baseURL string, rec model.CampaignRecord) string {
	if strings.TrimSpace(baseURL) == "" {
		return ""
	}

	normalized := Normalize(baseURL)

	u, err := url.Parse(normalized)
	if err != nil {
		return normalized
	}

	pairs := parseQuery(u.RawQuery)
	for _, p := range utmPairs(rec) {
		pairs = pairs.set(p.key, p.value)
	}
	u.RawQuery = pairs.encode()

	return u.String()
}

// utmPairs maps the record onto UTM query keys in their fixed order,
// dropping empty values so they can neither introduce nor overwrite a key.
func utmPairs(rec model.CampaignRecord) queryPairs {
	candidates := queryPairs{
		{key: "utm_source", value: rec.Source},
		{key: "utm_medium", value: rec.Medium},
		{key: "utm_campaign", value: rec.Name},
		{key: "utm_id", value: rec.ID},
		{key: "utm_term", value: rec.Term},
		{key: "utm_content", value: rec.Content},
	}

	pairs := make(queryPairs, 0, len(candidates))
	for _, p := range candidates {
		if p.value != "" {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// parseQuery decodes a raw query string into ordered pairs. Keys stay in
// first-seen order; a repeated key collapses to its last value, mirroring
// standard query-string decoding.
func parseQuery(rawQuery string) queryPairs {
	var pairs queryPairs
	for _, chunk := range strings.Split(rawQuery, "&") {
		if chunk == "" {
			continue
		}
		key, value, _ := strings.Cut(chunk, "=")
		pairs = pairs.set(unescape(key), unescape(value))
	}
	return pairs
}

// unescape decodes percent-escapes and '+', degrading to the raw token when
// the escape sequence is malformed.
func unescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func (q queryPairs) encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(p.key))
		b.WriteByte('=')
		b.WriteString(escape(p.value))
	}
	return b.String()
}

// escape percent-encodes a query component, keeping literal '/' readable in
// path-like values such as utm_campaign=spring/sale.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2F", "/")
}
