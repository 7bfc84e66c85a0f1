package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadarSubstitutesZeroForUndefined(t *testing.T) {
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 4, false),
		answer("P1", "A1", "Technology", "D1", 0, true),
	)
	report := Compute(store)
	data := Radar(report)

	require.Len(t, data.ProcessesVsDomains, 1)
	vec := data.ProcessesVsDomains[0]
	assert.Equal(t, "P1", vec.Process)
	assert.Equal(t, 4.0, vec.Domains["Governance"])
	// Chart geometry needs a number; the aggregation itself stays undefined.
	assert.Equal(t, 0.0, vec.Domains["Technology"])
	assert.Equal(t, 0.0, vec.Domains["Organization"])
	assert.False(t, report.Processes[0].Categories["Technology"].Valid)
}

func TestRadarInvertedProjection(t *testing.T) {
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 4, false),
		answer("P2", "A1", "Governance", "D1", 2, false),
	)
	data := Radar(Compute(store))

	require.Len(t, data.DomainsVsProcesses, 4)
	gov := data.DomainsVsProcesses[0]
	assert.Equal(t, "Governance", gov.Domain)
	assert.Equal(t, 4.0, gov.Processes["P1"])
	assert.Equal(t, 2.0, gov.Processes["P2"])
}

func TestRadarRoundsForDisplay(t *testing.T) {
	store := storeOf(
		answer("P1", "A1", "Governance", "D1", 5, false),
		answer("P1", "A1", "Governance", "D2", 5, false),
		answer("P1", "A1", "Governance", "D3", 0, false),
	)
	data := Radar(Compute(store))
	assert.Equal(t, 3.33, data.ProcessesVsDomains[0].Domains["Governance"])
}
