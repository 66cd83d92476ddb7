package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type code string

type status string

func (s status) String() string { return string(s) }

func TestEnglishTableCoversEveryCode(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	for _, k := range []string{
		"mlss_too_low", "mlss_too_high",
		"flow_too_low", "flow_too_high",
		"slr_too_low", "slr_too_high",
		"all_safe",
	} {
		assert.NotEqual(t, k, c.T("en", k), "missing text for %s", k)
	}
}

func TestLookupFallback(t *testing.T) {
	c := Default()

	assert.Equal(t, "Solids loading too low: energy waste.", c.T("en", "slr_too_low"))
	assert.Equal(t, "固体负荷过低：能耗浪费", c.T("zh", "slr_too_low"))
	// es has no param_mlss entry
	assert.Equal(t, "MLSS", c.T("es", "param_mlss"))
	assert.Equal(t, "no_such_key", c.T("zh", "no_such_key"))
	assert.Equal(t, "Normal", c.T("xx", "status_normal"))
}

func TestResolve(t *testing.T) {
	c := Default()
	assert.Equal(t, "zh", c.Resolve("zh-CN"))
	assert.Equal(t, "de", c.Resolve(" DE "))
	assert.Equal(t, "en", c.Resolve(""))
	assert.Equal(t, "en", c.Resolve("fr"))
}

func TestLanguagesAndMissingKeys(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"de", "en", "es", "zh"}, c.Languages())
	assert.Empty(t, c.MissingKeys("zh"))
	assert.Equal(t, []string{"param_mlss", "report_title"}, c.MissingKeys("es"))
}

func TestHelpers(t *testing.T) {
	c := Default()
	msgs := Messages(c, "en", []code{"slr_too_high", "all_safe"})
	assert.Equal(t, []string{
		"Solids loading too high: incomplete treatment, effluent may fail standards.",
		"All parameters within safe range, operation healthy.",
	}, msgs)
	assert.Equal(t, "最优", c.Status("zh", status("optimal")))
	assert.Equal(t, "Too high", c.Status("en", status("too_high")))
	assert.Equal(t, "Equivalent flow", c.Parameter("en", "equivalent_flow"))
	assert.Equal(t, "需要调整", c.Overall("zh", false))
}
