package survey

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestAggregate_CountByWorkLocation(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnWorkLocation},
		[]string{"Remote"}, []string{"Remote"}, []string{"Onsite"}, []string{"Hybrid"})

	table, err := Aggregate(ds, []string{domain.ColumnWorkLocation}, Count())
	require.NoError(t, err)

	want := []domain.SummaryRow{
		{Keys: []string{"Remote"}, Count: 2, Value: 2},
		{Keys: []string{"Onsite"}, Count: 1, Value: 1},
		{Keys: []string{"Hybrid"}, Count: 1, Value: 1},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("unexpected rows (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, table.Total())
	assert.Equal(t, []string{domain.ColumnWorkLocation}, table.Dimensions)
}

func TestAggregate_CountKeepsMissingAsOwnGroup(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnWorkLocation},
		[]string{"Remote"}, []string{""}, []string{"Onsite"}, []string{" "})

	table, err := Aggregate(ds, []string{domain.ColumnWorkLocation}, Count())
	require.NoError(t, err)

	missing, ok := table.Lookup(domain.MissingLabel)
	require.True(t, ok)
	assert.Equal(t, 2, missing.Count)

	nonMissing := 0
	for _, row := range table.Rows {
		if row.Keys[0] != domain.MissingLabel {
			nonMissing += row.Count
		}
	}
	assert.Equal(t, 2, nonMissing)
	assert.Equal(t, ds.Len(), table.Total())
}

func TestAggregate_CountTwoDimensionsOmitsUnobservedCombinations(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnIndustry, domain.ColumnWorkLocation},
		[]string{"IT", "Remote"},
		[]string{"Finance", "Onsite"},
		[]string{"IT", "Remote"},
		[]string{"IT", "Hybrid"},
	)

	table, err := Aggregate(ds, []string{domain.ColumnIndustry, domain.ColumnWorkLocation}, Count())
	require.NoError(t, err)

	want := []domain.SummaryRow{
		{Keys: []string{"IT", "Remote"}, Count: 2, Value: 2},
		{Keys: []string{"Finance", "Onsite"}, Count: 1, Value: 1},
		{Keys: []string{"IT", "Hybrid"}, Count: 1, Value: 1},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("unexpected rows (-want +got):\n%s", diff)
	}
	_, ok := table.Lookup("Finance", "Remote")
	assert.False(t, ok)
}

func TestAggregate_MeanSkipsMissing(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnWorkLocation, domain.ColumnHoursWorked},
		[]string{"Remote", "40"},
		[]string{"Remote", "oops"},
		[]string{"Remote", "50"},
		[]string{"Onsite", ""},
		[]string{"Onsite", "n/a"},
	)

	table, err := Aggregate(ds, []string{domain.ColumnWorkLocation}, Mean(domain.ColumnHoursWorked))
	require.NoError(t, err)

	want := []domain.SummaryRow{
		{Keys: []string{"Remote"}, Count: 3, Value: 45},
		{Keys: []string{"Onsite"}, Count: 2, NoData: true},
	}
	if diff := cmp.Diff(want, table.Rows, approx); diff != "" {
		t.Errorf("unexpected rows (-want +got):\n%s", diff)
	}
	assert.True(t, table.HasData())
}

func TestAggregate_MeanAllMissingHasNoData(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnWorkLocation, domain.ColumnVirtualMeetings},
		[]string{"Remote", ""}, []string{"Remote", "-"})

	table, err := Aggregate(ds, []string{domain.ColumnWorkLocation}, Mean(domain.ColumnVirtualMeetings))
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.True(t, table.Rows[0].NoData)
	assert.Zero(t, table.Rows[0].Value)
	assert.False(t, table.HasData())
}

func TestAggregate_PercentOfGroup(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnWorkLocation, domain.ColumnProductivityChange},
		[]string{"Remote", "Increase"},
		[]string{"Onsite", "Decrease"},
		[]string{"Remote", "Decrease"},
		[]string{"Onsite", "Decrease"},
		[]string{"Remote", "Increase"},
		[]string{"Hybrid", "No Change"},
		[]string{"Remote", "No Change"},
	)

	table, err := Aggregate(ds, []string{domain.ColumnWorkLocation},
		PercentOfGroup(domain.ColumnProductivityChange))
	require.NoError(t, err)

	assert.Equal(t, []string{domain.ColumnWorkLocation, domain.ColumnProductivityChange}, table.Dimensions)
	assert.Equal(t, []string{domain.ColumnWorkLocation}, table.Metric.Outer)

	want := []domain.SummaryRow{
		{Keys: []string{"Remote", "Increase"}, Count: 2, Value: 50},
		{Keys: []string{"Remote", "Decrease"}, Count: 1, Value: 25},
		{Keys: []string{"Remote", "No Change"}, Count: 1, Value: 25},
		{Keys: []string{"Onsite", "Decrease"}, Count: 2, Value: 100},
		{Keys: []string{"Hybrid", "No Change"}, Count: 1, Value: 100},
	}
	if diff := cmp.Diff(want, table.Rows, approx); diff != "" {
		t.Errorf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestAggregate_PercentWithoutOuterGroupCoversWholeDataset(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnWorkLocation},
		[]string{"Remote"}, []string{"Onsite"}, []string{"Remote"})

	table, err := Aggregate(ds, nil, PercentOfGroup(domain.ColumnWorkLocation))
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.InDelta(t, 200.0/3.0, table.Rows[0].Value, 1e-9)
	assert.InDelta(t, 100.0/3.0, table.Rows[1].Value, 1e-9)
	assert.Empty(t, table.Metric.Outer)
}

func TestAggregate_PercentRejectsForeignOuterGroup(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnWorkLocation, domain.ColumnRegion},
		[]string{"Remote", "Asia"})

	_, err := Aggregate(ds, []string{domain.ColumnWorkLocation},
		PercentOfGroup(domain.ColumnWorkLocation, domain.ColumnRegion))
	assert.Error(t, err)
}

func TestAggregate_Spread(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnWorkLocation, domain.ColumnYearsOfExperience},
		[]string{"Remote", "1"},
		[]string{"Remote", "3"},
		[]string{"Remote", "5"},
		[]string{"Remote", "7"},
		[]string{"Onsite", "10"},
		[]string{"Hybrid", "?"},
	)

	table, err := Aggregate(ds, []string{domain.ColumnWorkLocation}, Spread(domain.ColumnYearsOfExperience))
	require.NoError(t, err)

	remote, ok := table.Lookup("Remote")
	require.True(t, ok)
	require.NotNil(t, remote.Spread)
	assert.Equal(t, domain.Spread{Min: 1, Q1: 2, Median: 4, Q3: 6, Max: 7}, *remote.Spread)
	assert.Equal(t, 4.0, remote.Value)

	onsite, ok := table.Lookup("Onsite")
	require.True(t, ok)
	assert.Equal(t, domain.Spread{Min: 10, Q1: 10, Median: 10, Q3: 10, Max: 10}, *onsite.Spread)

	hybrid, ok := table.Lookup("Hybrid")
	require.True(t, ok)
	assert.True(t, hybrid.NoData)
	assert.Nil(t, hybrid.Spread)
}

func TestAggregate_EmptyDataset(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnWorkLocation, domain.ColumnHoursWorked})

	for _, metric := range []domain.Metric{
		Count(),
		Mean(domain.ColumnHoursWorked),
		PercentOfGroup(domain.ColumnHoursWorked),
		Spread(domain.ColumnHoursWorked),
	} {
		t.Run(string(metric.Kind), func(t *testing.T) {
			table, err := Aggregate(ds, []string{domain.ColumnWorkLocation}, metric)
			require.NoError(t, err)
			assert.True(t, table.Empty())
		})
	}
}

func TestAggregate_UnknownColumn(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnWorkLocation}, []string{"Remote"})

	_, err := Aggregate(ds, []string{"Shoe_Size"}, Count())
	assert.ErrorIs(t, err, domain.ErrUnknownColumn)

	_, err = Aggregate(ds, []string{domain.ColumnWorkLocation}, Mean("Shoe_Size"))
	assert.ErrorIs(t, err, domain.ErrUnknownColumn)
}

func TestAggregate_RandomDatasetsHoldInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	locations := []string{"Remote", "Onsite", "Hybrid", ""}
	changes := []string{"Increase", "Decrease", "No Change"}
	columns := []string{domain.ColumnWorkLocation, domain.ColumnProductivityChange}

	for run := 0; run < 25; run++ {
		t.Run(fmt.Sprintf("run-%d", run), func(t *testing.T) {
			n := rng.Intn(60)
			rows := make([][]string, 0, n)
			nonMissing := 0
			for i := 0; i < n; i++ {
				loc := locations[rng.Intn(len(locations))]
				if loc != "" {
					nonMissing++
				}
				rows = append(rows, []string{loc, changes[rng.Intn(len(changes))]})
			}
			ds := normalized(t, columns, rows...)

			counts, err := Aggregate(ds, []string{domain.ColumnWorkLocation}, Count())
			require.NoError(t, err)
			sum := 0
			for _, row := range counts.Rows {
				assert.Positive(t, row.Count)
				if row.Keys[0] != domain.MissingLabel {
					sum += row.Count
				}
			}
			assert.Equal(t, nonMissing, sum)
			assert.Equal(t, n, counts.Total())

			percents, err := Aggregate(ds, []string{domain.ColumnWorkLocation},
				PercentOfGroup(domain.ColumnProductivityChange))
			require.NoError(t, err)

			seen := map[string]bool{}
			totals := map[string]float64{}
			prev := ""
			for i, row := range percents.Rows {
				outer := row.Keys[0]
				if i > 0 && outer != prev {
					assert.False(t, seen[outer], "outer group %q is not contiguous", outer)
				}
				seen[outer] = true
				prev = outer
				totals[outer] += row.Value
			}
			for outer, total := range totals {
				assert.InDelta(t, 100.0, total, 1e-6, outer)
			}
		})
	}
}
