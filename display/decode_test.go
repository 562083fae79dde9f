package display

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/statview/engine"
	"github.com/spektr-org/statview/schema"
)

func TestDecodeTextOnly(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{
		"success": true,
		"response": "Il y a 42 clients.",
		"cypherQuery": "MATCH (c:Client) RETURN count(c)",
		"executionTime": 12,
		"data": [{"count": 42}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, SenderBot, msg.Sender)
	assert.Equal(t, "Il y a 42 clients.", msg.Text)
	assert.False(t, msg.Failed)
	assert.Empty(t, msg.Items)
	assert.Equal(t, "Requête Cypher: MATCH (c:Client) RETURN count(c) | Temps: 12ms | Résultats: 1", msg.Details())
}

func TestDecodeFailure(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"success": false, "error": "Requête invalide"}`))
	require.NoError(t, err)
	assert.True(t, msg.Failed)
	assert.Equal(t, "Requête invalide", msg.Text)

	msg, err = DecodeMessage([]byte(`{"success": false}`))
	require.NoError(t, err)
	assert.Equal(t, GenericErrorText, msg.Text)
	assert.Equal(t, "", msg.Details())
}

func TestDecodeMissingSuccessIsFailure(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"error": "backend indisponible"}`))
	require.NoError(t, err)
	assert.True(t, msg.Failed)
	assert.Equal(t, "backend indisponible", msg.Text)

	msg, err = DecodeMessage([]byte(`{"response": "ignoré"}`))
	require.NoError(t, err)
	assert.True(t, msg.Failed)
	assert.Equal(t, GenericErrorText, msg.Text)
}

func TestDecodeDescriptorNullDataFallsBackToContent(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{
		"success": true,
		"content": [{"render": "table", "data": null, "content": {"a": 1}}]
	}`))
	require.NoError(t, err)
	require.Len(t, msg.Items, 1)
	assert.Equal(t, engine.ModeTable, msg.Items[0].SuggestedMode)
	assert.Equal(t, []string{"a"}, msg.Items[0].Payload.Keys())
}

func TestDecodeContentObjectWithMetadata(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{
		"success": true,
		"response": "Répartition par genre",
		"content": {"globalDistribution": {"Homme": 12, "Femme": 8, "Homme_pct": "60%", "Femme_pct": "40%"}},
		"metadata": {"render": "chart", "chartType": "pie", "usePercent": true, "title": "Genre"}
	}`))
	require.NoError(t, err)
	require.Len(t, msg.Items, 1)

	item := msg.Items[0]
	assert.Equal(t, engine.ModePie, item.SuggestedMode)
	assert.True(t, item.SuggestedPercent)
	assert.Equal(t, "Genre", item.Title)
	assert.Equal(t, schema.Flat, item.Shape.Kind)
	assert.Equal(t, "globalDistribution", item.Shape.Container)
}

func TestDecodeContentDescriptors(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{
		"success": true,
		"response": "Deux vues",
		"content": [
			{"render": "chart_pct", "chartType": "bar", "title": "Mensuel", "data": {"04-2025": {"a": 1, "a_pct": "100%"}}},
			{"render": "table", "content": {"x": 1}},
			{"render": "table", "data": [1, 2]},
			"oops"
		]
	}`))
	require.NoError(t, err)
	require.Len(t, msg.Items, 2, "non-object payloads are skipped")

	assert.Equal(t, engine.ModeBar, msg.Items[0].SuggestedMode)
	assert.True(t, msg.Items[0].SuggestedPercent)
	assert.Equal(t, "Mensuel", msg.Items[0].Title)
	assert.Equal(t, schema.Matrix, msg.Items[0].Shape.Kind)

	assert.Equal(t, engine.ModeTable, msg.Items[1].SuggestedMode)
	assert.False(t, msg.Items[1].SuggestedPercent)
	assert.NotEqual(t, msg.Items[0].ID, msg.Items[1].ID)
}

func TestDecodeKeepsPayloadOrder(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"success": true, "content": {"z": 1, "a": 2, "m": 3}}`))
	require.NoError(t, err)
	require.Len(t, msg.Items, 1)
	assert.Equal(t, []string{"z", "a", "m"}, msg.Items[0].Payload.Keys())
}

func TestDecodeRejectsInvalidBodies(t *testing.T) {
	_, err := DecodeMessage([]byte(`{"success": tru`))
	assert.True(t, errors.Is(err, schema.ErrInvalidJSON))

	_, err = DecodeMessage([]byte(`[1, 2]`))
	assert.True(t, errors.Is(err, ErrNotAnObject))
}

func TestHintsFromRender(t *testing.T) {
	assert.Equal(t, Hints{Mode: engine.ModeBar}, HintsFromRender("chart", ""))
	assert.Equal(t, Hints{Mode: engine.ModePie}, HintsFromRender("chart", "pie"))
	assert.Equal(t, Hints{Mode: engine.ModePie, Percent: true}, HintsFromRender("chart_pct", "pie"))
	assert.Equal(t, Hints{Mode: engine.ModeTable}, HintsFromRender("table", "pie"))
	assert.Equal(t, Hints{Mode: engine.ModeText}, HintsFromRender("text", ""))
}

func TestCannedMessages(t *testing.T) {
	welcome := WelcomeMessage()
	assert.Equal(t, SenderBot, welcome.Sender)
	assert.Equal(t, WelcomeText, welcome.Text)

	failed := ConnectionErrorMessage()
	assert.True(t, failed.Failed)
	assert.Equal(t, ConnectionErrorText, failed.Text)

	user := NewUserMessage("Combien de clients ?")
	assert.Equal(t, SenderUser, user.Sender)
	assert.False(t, user.Timestamp.IsZero())
}
