package display

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/spektr-org/statview/schema"
)

// ============================================================================
// INBOUND DECODING — Backend response → Message
// ============================================================================
// Recognized fields:
//   success, response, error            → message text
//   cypherQuery, executionTime, data    → details line
//   content (object) + metadata         → one item, hints from metadata
//   content (array of descriptors)      → one item per descriptor
//
// Descriptors look like {render, chartType, title, data|content}. A
// descriptor whose payload is not an object is skipped.
// ============================================================================

// ErrNotAnObject is returned when a response body is valid JSON but not an
// object.
var ErrNotAnObject = errors.New("response is not a JSON object")

// DecodeMessage turns a backend response body into a bot message.
func DecodeMessage(data []byte) (*Message, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(schema.ErrInvalidJSON, "decode message")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.Wrap(ErrNotAnObject, "decode message")
	}
	return FromResponse(root), nil
}

// FromResponse builds a bot message from an already parsed response.
func FromResponse(root gjson.Result) *Message {
	msg := botMessage("")

	// A missing success flag counts as a failure.
	if !root.Get("success").Bool() {
		msg.Failed = true
		msg.Text = root.Get("error").String()
		if msg.Text == "" {
			msg.Text = GenericErrorText
		}
	} else {
		msg.Text = root.Get("response").String()
	}

	msg.CypherQuery = root.Get("cypherQuery").String()
	msg.ExecutionTime = root.Get("executionTime").Int()
	if d := root.Get("data"); d.IsArray() {
		msg.DataCount = len(d.Array())
	}

	msg.Items = decodeItems(root.Get("content"), root.Get("metadata"))
	return msg
}

func decodeItems(content, metadata gjson.Result) []*Item {
	switch {
	case content.IsObject():
		hints := HintsFromRender(metadata.Get("render").String(), metadata.Get("chartType").String())
		if metadata.Get("usePercent").Bool() {
			hints.Percent = true
		}
		hints.Title = metadata.Get("title").String()
		return []*Item{NewItem(schema.FromResult(content), hints)}

	case content.IsArray():
		var items []*Item
		content.ForEach(func(_, d gjson.Result) bool {
			if item := decodeDescriptor(d); item != nil {
				items = append(items, item)
			}
			return true
		})
		return items
	}
	return nil
}

func decodeDescriptor(d gjson.Result) *Item {
	if !d.IsObject() {
		return nil
	}
	payload := d.Get("data")
	if !payload.IsObject() {
		payload = d.Get("content")
	}
	if !payload.IsObject() {
		return nil
	}

	hints := HintsFromRender(d.Get("render").String(), d.Get("chartType").String())
	hints.Title = d.Get("title").String()
	return NewItem(schema.FromResult(payload), hints)
}
