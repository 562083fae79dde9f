package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// CLASSIFIER TESTS
// ============================================================================

var monthlyJSON = `{
	"04-2025": {"developer": 1, "test": 0, "total": 1},
	"05-2025": {"developer": 2, "test": 1, "total": 3, "developer_pct": "66,67%"}
}`

func TestClassifyFlat(t *testing.T) {
	shape := Classify(MustParse(`{"a": 5, "b": 3, "total": 8}`))

	assert.Equal(t, Flat, shape.Kind)
	assert.False(t, shape.IsMatrix)
	assert.False(t, shape.HasPercent)
	assert.True(t, shape.HasTotal)
	assert.Empty(t, shape.Periods)
}

func TestClassifyFlatWithPercentCompanions(t *testing.T) {
	shape := Classify(MustParse(`{"a":5,"b":3,"total":8,"a_pct":"62,50%","b_pct":"37,50%","total_pct":"100%"}`))

	assert.Equal(t, Flat, shape.Kind)
	assert.True(t, shape.HasPercent)
}

func TestClassifyFlatTotalPctAloneIsNotPercent(t *testing.T) {
	shape := Classify(MustParse(`{"a": 5, "total_pct": "100%"}`))

	assert.Equal(t, Flat, shape.Kind)
	assert.False(t, shape.HasPercent, "total_pct never enables percent mode")
}

func TestClassifyMatrix(t *testing.T) {
	shape := Classify(MustParse(monthlyJSON))

	require.Equal(t, Matrix, shape.Kind)
	assert.True(t, shape.IsMatrix)
	assert.True(t, shape.HasPercent, "percent keys are scanned across every row")
	assert.True(t, shape.HasTotal)
	assert.Equal(t, []string{"04-2025", "05-2025"}, shape.Periods)
}

func TestClassifyMatrixKeepsSourceOrder(t *testing.T) {
	shape := Classify(MustParse(`{"z": {"a": 1}, "m": {"a": 2}, "a": {"a": 3}}`))

	require.Equal(t, Matrix, shape.Kind)
	assert.Equal(t, []string{"z", "m", "a"}, shape.Periods)
}

func TestClassifyUnrecognized(t *testing.T) {
	cases := map[string]string{
		"empty object":          `{}`,
		"mixed scalar/object":   `{"a": {}, "b": 5}`,
		"array":                 `[1, 2, 3]`,
		"scalar":                `42`,
		"string":                `"hello"`,
		"only total_pct":        `{"total_pct": "100%"}`,
		"empty strings only":    `{"a": "", "b": ""}`,
		"null values only":      `{"a": null}`,
		"matrix of empty rows":  `{"04-2025": {}, "05-2025": {}}`,
		"matrix of total_pct":   `{"04-2025": {"total_pct": "100%"}}`,
		"array value in flat":   `{"a": 1, "b": [1, 2]}`,
		"empty container value": `{"dataTable": {}}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			shape := Classify(MustParse(payload))
			assert.Equal(t, Unrecognized, shape.Kind)
			assert.False(t, shape.IsMatrix)
		})
	}
}

func TestClassifyUnwrapsContainer(t *testing.T) {
	t.Run("globalDistribution", func(t *testing.T) {
		shape := Classify(MustParse(`{"globalDistribution": {"dev": 6, "test": 1}}`))
		assert.Equal(t, Flat, shape.Kind)
		assert.Equal(t, "globalDistribution", shape.Container)
		assert.Equal(t, []string{"dev", "test"}, shape.Body.Keys())
	})

	t.Run("dataTable", func(t *testing.T) {
		shape := Classify(MustParse(`{"dataTable": ` + monthlyJSON + `}`))
		assert.Equal(t, Matrix, shape.Kind)
		assert.Equal(t, "dataTable", shape.Container)
		assert.Equal(t, []string{"04-2025", "05-2025"}, shape.Periods)
	})

	t.Run("dataTable wins over globalDistribution", func(t *testing.T) {
		shape := Classify(MustParse(`{"globalDistribution": {"dev": 6}, "dataTable": {"04-2025": {"dev": 6}}}`))
		assert.Equal(t, Matrix, shape.Kind)
		assert.Equal(t, "dataTable", shape.Container)
	})

	t.Run("only one level", func(t *testing.T) {
		shape := Classify(MustParse(`{"dataTable": {"dataTable": {"04-2025": {"dev": 1}}}}`))
		assert.Equal(t, Matrix, shape.Kind)
		assert.Equal(t, []string{"dataTable"}, shape.Periods)
	})
}

func TestClassifyIsPure(t *testing.T) {
	payload := MustParse(monthlyJSON)
	before := payload.Fingerprint()

	first := Classify(payload)
	second := Classify(payload)

	assert.Equal(t, first, second)
	assert.Equal(t, before, payload.Fingerprint())
}

func TestClassifyBareSuffixIsPlainCategory(t *testing.T) {
	shape := Classify(MustParse(`{"_pct": "5%", "a": 1}`))
	assert.Equal(t, Flat, shape.Kind)
	assert.False(t, shape.HasPercent)
}

func TestPercentKeyRules(t *testing.T) {
	assert.True(t, IsPercentKey("dev_pct"))
	assert.True(t, IsPercentKey("total_pct"))
	assert.False(t, IsPercentKey("dev"))
	assert.False(t, IsPercentKey(PercentSuffix), "bare suffix names no category")
	assert.False(t, IsPercentCategory(PercentSuffix))
	assert.True(t, IsPercentCategory("dev_pct"))
	assert.False(t, IsPercentCategory("total_pct"))
	assert.Equal(t, "dev", StripPercent("dev_pct"))
	assert.Equal(t, "dev_pct", PercentKey("dev"))
}
