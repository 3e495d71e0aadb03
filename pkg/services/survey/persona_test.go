package survey

import (
	"context"
	"testing"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAggregator struct {
	mock.Mock
}

func (m *mockAggregator) Aggregate(
	ds *domain.Dataset,
	groupBy []string,
	metric domain.Metric,
) (domain.SummaryTable, error) {
	args := m.Called(ds, groupBy, metric)
	return args.Get(0).(domain.SummaryTable), args.Error(1)
}

var personaColumns = []string{
	domain.ColumnWorkLocation,
	domain.ColumnIndustry,
	domain.ColumnRegion,
	domain.ColumnStressLevel,
	domain.ColumnProductivityChange,
	domain.ColumnSleepQuality,
	domain.ColumnWorkLifeBalance,
	domain.ColumnHoursWorked,
	domain.ColumnVirtualMeetings,
	domain.ColumnPhysicalActivity,
}

func personaDataset(t *testing.T) *domain.Dataset {
	return normalized(t, personaColumns,
		[]string{"Remote", "IT", "Europe", "High", "Increase in Productivity", "Poor", "5", "50", "3", "Daily"},
		[]string{"Onsite", "Finance", "Asia", "Low", "Increase", "Poor", "2", "30", "2", "None"},
		[]string{"Hybrid", "IT", "Europe", "HIGH", "increase", "poor", "3", "40", "9", "Weekly"},
		[]string{"Remote", "Retail", "Africa", "Medium", "Decrease", "Good", "5", "20", "12", "Weekly"},
		[]string{"Remote", "IT", "Asia", "High", "No Change", "Average", "1", "60", "1", "None"},
	)
}

func TestFilter_AtRisk(t *testing.T) {
	ds := personaDataset(t)
	f := NewFilter(NewEngine())

	result, err := f.Apply(context.Background(), ds, AtRisk)
	require.NoError(t, err)

	assert.False(t, result.Empty)
	assert.Equal(t, []int{0, 2}, result.Rows)
	assert.Equal(t, 2, result.Size)
	assert.Equal(t, 5, result.Total)
	assert.InDelta(t, 40.0, result.Share(), 1e-9)
	require.Len(t, result.Summaries, len(AtRisk.Breakdowns))

	byLocation := result.Summaries[0]
	assert.Equal(t, 2, byLocation.Total())
	remote, ok := byLocation.Lookup("Remote")
	require.True(t, ok)
	assert.Equal(t, 1, remote.Count)
}

func TestFilter_Resilient(t *testing.T) {
	ds := personaDataset(t)
	f := NewFilter(nil)

	result, err := f.Apply(context.Background(), ds, Resilient)
	require.NoError(t, err)

	// max balance is 5 (rows 0 and 3); median hours 40, median meetings 3
	assert.Equal(t, []int{0, 3}, result.Rows)
	require.Len(t, result.Summaries, 3)
}

func TestFilter_ThresholdsFollowTheDataset(t *testing.T) {
	f := NewFilter(nil)
	predicate := Compare(domain.ColumnHoursWorked, OpGT, MedianOf(domain.ColumnHoursWorked))

	low := normalized(t, []string{domain.ColumnHoursWorked},
		[]string{"10"}, []string{"20"}, []string{"30"})
	high := normalized(t, []string{domain.ColumnHoursWorked},
		[]string{"10"}, []string{"50"}, []string{"60"})

	rows, err := f.Match(low, predicate)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, rows)

	rows, err = f.Match(high, predicate)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, rows)

	rows, err = f.Match(high, Compare(domain.ColumnHoursWorked, OpGE, MaxOf(domain.ColumnHoursWorked)))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, rows)
}

func TestFilter_IsIdempotent(t *testing.T) {
	ds := personaDataset(t)
	f := NewFilter(nil)

	for _, persona := range Personas() {
		t.Run(persona.Name, func(t *testing.T) {
			first, err := f.Apply(context.Background(), ds, persona)
			require.NoError(t, err)
			second, err := f.Apply(context.Background(), ds, persona)
			require.NoError(t, err)

			assert.Equal(t, first.Rows, second.Rows)
			assert.Equal(t, first.Size, second.Size)
			assert.Equal(t, first.Summaries, second.Summaries)
		})
	}
}

func TestFilter_EmptyMatchSkipsAggregation(t *testing.T) {
	ds := normalized(t, personaColumns,
		[]string{"Remote", "IT", "Europe", "Low", "Decrease", "Good", "3", "40", "3", "Daily"},
		[]string{"Onsite", "IT", "Asia", "High", "No Change", "Poor", "2", "45", "5", "None"},
	)
	agg := new(mockAggregator)
	f := NewFilter(agg)

	result, err := f.Apply(context.Background(), ds, AtRisk)
	require.NoError(t, err)

	assert.True(t, result.Empty)
	assert.Zero(t, result.Size)
	assert.Nil(t, result.Summaries)
	assert.Nil(t, result.Subset)
	assert.Zero(t, result.Share())
	agg.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestFilter_MissingValuesNeverMatch(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnSleepQuality, domain.ColumnHoursWorked},
		[]string{"", ""},
		[]string{"Poor", "80"},
	)
	f := NewFilter(nil)

	rows, err := f.Match(ds, Contains(domain.ColumnSleepQuality, ""))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, rows)

	rows, err = f.Match(ds, Compare(domain.ColumnHoursWorked, OpLT, Fixed(100)))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, rows)
}

func TestFilter_UnresolvableThresholdMatchesNothing(t *testing.T) {
	ds := normalized(t, []string{domain.ColumnHoursWorked}, []string{"?"}, []string{""})

	rows, err := NewFilter(nil).Match(ds,
		Compare(domain.ColumnHoursWorked, OpLE, MedianOf(domain.ColumnHoursWorked)))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFilter_PropagatesAggregationErrors(t *testing.T) {
	ds := personaDataset(t)
	agg := new(mockAggregator)
	agg.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.SummaryTable{}, domain.ErrUnknownColumn)

	_, err := NewFilter(agg).Apply(context.Background(), ds, AtRisk)
	assert.ErrorIs(t, err, domain.ErrUnknownColumn)
	agg.AssertNumberOfCalls(t, "Aggregate", 1)
}

func TestFilter_UnknownField(t *testing.T) {
	ds := personaDataset(t)

	_, err := NewFilter(nil).Match(ds, Equals("Favourite_Color", "blue"))
	assert.ErrorIs(t, err, domain.ErrUnknownColumn)
}

func TestPredicate_String(t *testing.T) {
	assert.Equal(t,
		`Productivity_Change contains "increase" AND Stress_Level contains "high" AND Sleep_Quality contains "poor"`,
		AtRisk.Predicate.String())
	assert.Equal(t,
		"Work_Life_Balance_Rating == max(Work_Life_Balance_Rating) AND "+
			"(Hours_Worked_Per_Week > median(Hours_Worked_Per_Week) OR "+
			"Number_of_Virtual_Meetings > median(Number_of_Virtual_Meetings))",
		Resilient.Predicate.String())
}

func TestLookupPersona(t *testing.T) {
	p, err := LookupPersona("AT-RISK")
	require.NoError(t, err)
	assert.Equal(t, AtRisk.Name, p.Name)

	_, err = LookupPersona("night-owl")
	assert.ErrorIs(t, err, domain.ErrUnknownPersona)
}
