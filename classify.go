package consumption

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// ClassifyResult is the normalized shape of a classify response. Template is
// always set on success; Title is nil when the upstream did not provide one.
type ClassifyResult struct {
	Template string
	Title    *string
}

// normalizeClassifyResponse coerces a loosely-structured classify payload
// into a ClassifyResult.
//
// The upstream serves the fields either at the top level or wrapped one level
// under `data`. The rule is deterministic: whenever `data` is a non-array
// object it is the field source, even if the top level also carries a
// template; the top level is consulted only when `data` is absent or not an
// object. The selected object must hold a string `template`; `title` is taken
// from the same object when it is a string, and ignored otherwise.
func normalizeClassifyResponse(body []byte) (*ClassifyResult, error) {
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.Wrap(ErrMalformedClassifyResponse, "response is not an object")
	}

	source := root

	if data := root.Get("data"); data.IsObject() {
		source = data
	}

	template := source.Get("template")
	if template.Type != gjson.String {
		return nil, errors.Wrap(ErrMalformedClassifyResponse, "no usable template field")
	}

	result := ClassifyResult{
		Template: template.String(),
	}

	if title := source.Get("title"); title.Type == gjson.String {
		result.Title = lo.ToPtr(title.String())
	}

	return &result, nil
}
