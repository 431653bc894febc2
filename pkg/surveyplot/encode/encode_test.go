package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/reshape"
)

var replication = []string{"No Replication", "Partial Replication", "Full Replication"}

func replicationRecords() []models.LongRecord {
	rec := func(g, s string, v float64) models.LongRecord {
		return models.LongRecord{Group: g, Series: s, Value: models.Some(v)}
	}
	return reshape.Percentages([]models.LongRecord{
		rec("2013", replication[0], 3), rec("2013", replication[1], 0), rec("2013", replication[2], 1),
		rec("2014", replication[0], 1), rec("2014", replication[1], 2), rec("2014", replication[2], 1),
	})
}

func barSpec(mode models.StackMode) models.VisualSpec {
	return models.VisualSpec{
		XField:       models.FieldGroup,
		YField:       models.FieldValue,
		FillField:    models.FieldSeries,
		PatternField: models.FieldSeries,
		ColorScale:   models.ColorScale{Kind: models.ScaleDiscrete},
		StackMode:    mode,
		SeriesOrder:  replication,
	}
}

func marksFor(ml *MarkList, group string) []Mark {
	var out []Mark
	for _, m := range ml.Marks {
		if m.Record.Group == group {
			out = append(out, m)
		}
	}
	return out
}

func TestEncodePercentFilled(t *testing.T) {
	ml, err := Encode(replicationRecords(), barSpec(models.StackPercent))
	require.NoError(t, err)
	require.Len(t, ml.Marks, 6)
	assert.Equal(t, models.GeometryBar, ml.Geometry)
	assert.Equal(t, 100.0, ml.ValueMax)

	y2014 := marksFor(ml, "2014")
	var sum float64
	for _, m := range y2014 {
		sum += m.End - m.Start
	}
	assert.InDelta(t, 100, sum, 1e-9)
	assert.InDelta(t, 100, y2014[2].End, 1e-9, "top of the last segment is the full axis")
	assert.Equal(t, []string{"25%", "50%", "25%"}, []string{y2014[0].Label, y2014[1].Label, y2014[2].Label})

	y2013 := marksFor(ml, "2013")
	assert.Equal(t, "75%", y2013[0].Label)
	assert.False(t, y2013[1].ShowLabel, "zero segment label is suppressed")
	assert.NotZero(t, y2013[1].Color, "zero segment still has a resolved colour")
	assert.Equal(t, "25%", y2013[2].Label)
	assert.InDelta(t, 87.5, y2013[2].Mid(), 1e-9, "label sits in the middle of its span")
}

func TestEncodeStackedTopEqualsTotal(t *testing.T) {
	records := replicationRecords()
	ml, err := Encode(records, barSpec(models.StackStacked))
	require.NoError(t, err)

	totals := reshape.Totals(records)
	for _, g := range []string{"2013", "2014"} {
		marks := marksFor(ml, g)
		assert.Equal(t, totals[g], marks[len(marks)-1].End)
		assert.Equal(t, 0.0, marks[0].Start)
	}
	assert.Equal(t, 4.0, ml.ValueMax)
	assert.Equal(t, "3", marksFor(ml, "2013")[0].Label)
}

func TestEncodeStackFollowsDeclaredOrderNotRecordOrder(t *testing.T) {
	records := replicationRecords()
	reversed := make([]models.LongRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	ml, err := Encode(reversed, barSpec(models.StackStacked))
	require.NoError(t, err)

	for _, m := range ml.Marks {
		if m.Record.Group == "2014" && m.Record.Series == "No Replication" {
			assert.Equal(t, 0.0, m.Start)
			assert.Equal(t, 1.0, m.End)
		}
	}
}

func TestEncodeDeterministicColorAndPattern(t *testing.T) {
	assignment := func(ml *MarkList) map[string][2]string {
		out := map[string][2]string{}
		for _, m := range ml.Marks {
			out[m.Record.Series] = [2]string{m.Color.Hex(), string(m.Pattern)}
		}
		return out
	}

	first, err := Encode(replicationRecords(), barSpec(models.StackPercent))
	require.NoError(t, err)
	second, err := Encode(replicationRecords(), barSpec(models.StackStacked))
	require.NoError(t, err)
	assert.Equal(t, assignment(first), assignment(second))

	// A subset keeps the pairing because indices come from the declared order.
	subset, err := Encode(reshape.Filter(replicationRecords(), models.FieldSeries, "Full Replication"), barSpec(models.StackPercent))
	require.NoError(t, err)
	assert.Equal(t, assignment(first)["Full Replication"], assignment(subset)["Full Replication"])

	want := [2]string{MustHex(models.DefaultPalette[0]).Hex(), string(PatternNone)}
	assert.Equal(t, want, assignment(first)["No Replication"])
	assert.Equal(t, string(PatternStripe), assignment(first)["Partial Replication"][1])

	require.Len(t, first.Legend.Entries, 3)
	assert.Equal(t, PatternCrosshatch, first.Legend.Entries[2].Pattern)
}

func heatmapSpec() models.VisualSpec {
	return models.VisualSpec{
		XField:     models.FieldSeries,
		YField:     models.FieldGroup,
		FillField:  models.FieldValue,
		LabelField: models.FieldValue,
		ColorScale: models.ColorScale{Kind: models.ScaleContinuous, Low: "#ffffff", High: "#000000", Missing: "#ff0000"},
	}
}

func TestEncodeHeatmapMissingVersusZero(t *testing.T) {
	records := []models.LongRecord{
		{Group: "coverage", Series: "greedy", Value: models.Some(0)},
		{Group: "coverage", Series: "meta", Value: models.Some(10)},
		{Group: "history", Series: "greedy", Value: models.Missing()},
		{Group: "history", Series: "meta", Value: models.Some(5)},
	}

	ml, err := Encode(records, heatmapSpec())
	require.NoError(t, err)
	assert.Equal(t, models.GeometryTile, ml.Geometry)
	assert.Equal(t, []string{"greedy", "meta"}, ml.XCategories)
	assert.Equal(t, []string{"coverage", "history"}, ml.YCategories)

	assert.Equal(t, RGB{255, 255, 255}, ml.Marks[0].Color, "observed zero is the low end")
	assert.Equal(t, RGB{0, 0, 0}, ml.Marks[1].Color)
	assert.Equal(t, RGB{255, 0, 0}, ml.Marks[2].Color, "absent uses the missing colour")
	assert.NotEqual(t, ml.Marks[0].Color, ml.Marks[2].Color)
	assert.Equal(t, RGB{128, 128, 128}, ml.Marks[3].Color)

	assert.False(t, ml.Marks[0].ShowLabel)
	assert.False(t, ml.Marks[2].ShowLabel)
	assert.True(t, ml.Marks[1].ShowLabel)
	assert.Equal(t, "10", ml.Marks[1].Label)

	require.NotNil(t, ml.Legend.Gradient)
	require.NotNil(t, ml.Legend.Missing)
	assert.Equal(t, 0.0, ml.Legend.Gradient.Min)
	assert.Equal(t, 10.0, ml.Legend.Gradient.Max)
}

func TestEncodeShowZeroLabels(t *testing.T) {
	spec := heatmapSpec()
	spec.ShowZeroLabels = true
	records := []models.LongRecord{
		{Group: "a", Series: "x", Value: models.Some(0)},
		{Group: "a", Series: "y", Value: models.Missing()},
	}
	ml, err := Encode(records, spec)
	require.NoError(t, err)
	assert.Equal(t, "0", ml.Marks[0].Label)
	assert.True(t, ml.Marks[0].ShowLabel)
	assert.Equal(t, "NA", ml.Marks[1].Label)
}

func TestEncodeLabelFormat(t *testing.T) {
	records := []models.LongRecord{
		{Group: "a", Series: "x", Value: models.Some(2.5)},
		{Group: "a", Series: "y", Value: models.Some(12)},
	}

	ml, err := Encode(records, heatmapSpec())
	require.NoError(t, err)
	assert.Equal(t, "2.5", ml.Marks[0].Label, "default keeps fractions")
	assert.Equal(t, "12", ml.Marks[1].Label)

	spec := heatmapSpec()
	spec.LabelFormat = "%.2f"
	ml, err = Encode(records, spec)
	require.NoError(t, err)
	assert.Equal(t, "2.50", ml.Marks[0].Label)
}

func TestEncodeUndefinedPercentOmitsLabel(t *testing.T) {
	records := reshape.Percentages([]models.LongRecord{
		{Group: "2013", Series: "a", Value: models.Some(0)},
		{Group: "2013", Series: "b", Value: models.Some(0)},
	})
	spec := barSpec(models.StackPercent)
	spec.SeriesOrder = nil
	spec.ShowZeroLabels = true

	ml, err := Encode(records, spec)
	require.NoError(t, err)
	for _, m := range ml.Marks {
		assert.False(t, m.ShowLabel)
		assert.Equal(t, 0.0, m.End)
	}
}

func TestEncodePaletteExhausted(t *testing.T) {
	spec := barSpec(models.StackStacked)
	spec.Patterns = []string{"none", "stripe"}
	_, err := Encode(replicationRecords(), spec)
	var exhausted *PaletteExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "pattern", exhausted.Channel)
	assert.Equal(t, 3, exhausted.Need)

	spec = barSpec(models.StackStacked)
	spec.ColorScale.Palette = []string{"#000000", "#ffffff"}
	_, err = Encode(replicationRecords(), spec)
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "color", exhausted.Channel)

	spec = barSpec(models.StackStacked)
	spec.Patterns = []string{"zigzag"}
	_, err = Encode(replicationRecords(), spec)
	require.Error(t, err)
}

func TestEncodeDodgedBars(t *testing.T) {
	ml, err := Encode(replicationRecords(), barSpec(models.StackNone))
	require.NoError(t, err)
	for i, m := range marksFor(ml, "2014") {
		assert.Equal(t, i, m.Slot)
		assert.Equal(t, 3, m.Slots)
		assert.Equal(t, 0.0, m.Start)
	}
	assert.Equal(t, 3.0, ml.ValueMax)
}

func TestEncodeTreemap(t *testing.T) {
	records := []models.LongRecord{
		{Group: "SIR", Series: "Count", Value: models.Some(12)},
		{Group: "Defects4J", Series: "Count", Value: models.Some(6)},
		{Group: "Other", Series: "Count", Value: models.Some(0)},
	}
	spec := models.VisualSpec{
		AreaField:  models.FieldValue,
		FillField:  models.FieldValue,
		LabelField: models.FieldGroup,
		ColorScale: models.ColorScale{Kind: models.ScaleContinuous},
	}

	ml, err := Encode(records, spec)
	require.NoError(t, err)
	assert.Equal(t, models.GeometryTreemap, ml.Geometry)
	assert.Equal(t, []float64{12, 6, 0}, []float64{ml.Marks[0].Weight, ml.Marks[1].Weight, ml.Marks[2].Weight})
	assert.Equal(t, "SIR\n12", ml.Marks[0].Label)
	assert.False(t, ml.Marks[2].ShowLabel)
	assert.Empty(t, ml.XCategories)
}

func TestEncodeFacets(t *testing.T) {
	spec := barSpec(models.StackNone)
	spec.FacetField = models.FieldSeries
	spec.PatternField = models.FieldNone

	ml, err := Encode(replicationRecords(), spec)
	require.NoError(t, err)
	assert.Equal(t, replication, ml.Facets)
	assert.Equal(t, []string{"2013", "2014"}, ml.XCategories)
	for _, m := range ml.Marks {
		assert.Equal(t, m.Record.Series, m.Facet)
		assert.Equal(t, 1, m.Slots, "one bar per facet and year")
	}
}

func TestGradient(t *testing.T) {
	g := Gradient{Low: MustHex("#000000"), High: MustHex("#ffffff"), Min: 0, Max: 4}
	assert.Equal(t, RGB{0, 0, 0}, g.At(0))
	assert.Equal(t, RGB{255, 255, 255}, g.At(4))
	assert.Equal(t, RGB{255, 255, 255}, g.At(9), "values beyond the domain clamp")

	flat := Gradient{Low: MustHex("#000000"), High: MustHex("#ffffff"), Min: 3, Max: 3}
	assert.Equal(t, flat.High, flat.At(3))

	_, err := ParseHex("blue")
	assert.Error(t, err)
	assert.Equal(t, "#0a0b0c", RGB{10, 11, 12}.Hex())
}
