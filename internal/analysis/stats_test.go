package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	st := Describe([]float64{85, 71, 60, 93, 56})
	require.NotNil(t, st)

	assert.InDelta(t, 73.0, st.Mean, 1e-9)
	assert.InDelta(t, 71.0, st.Median, 1e-9)
	require.NotNil(t, st.Std)
	assert.InDelta(t, 15.8587, *st.Std, 1e-3)
	assert.Equal(t, 93, st.Max)
	assert.Equal(t, 56, st.Min)
	assert.Equal(t, 5, st.Count)
}

func TestDescribeSkipsNaN(t *testing.T) {
	st := Describe([]float64{math.NaN(), 10, math.NaN(), 20})
	require.NotNil(t, st)
	assert.Equal(t, 2, st.Count)
	assert.InDelta(t, 15.0, st.Mean, 1e-9)
	assert.InDelta(t, 15.0, st.Median, 1e-9)
}

func TestDescribeAllNaN(t *testing.T) {
	assert.Nil(t, Describe([]float64{math.NaN(), math.NaN()}))
	assert.Nil(t, Describe(nil))
}

func TestDescribeSingleValueHasNoStd(t *testing.T) {
	st := Describe([]float64{42})
	require.NotNil(t, st)
	assert.Nil(t, st.Std)
	assert.Equal(t, 1, st.Count)
}

func TestMedianEvenCount(t *testing.T) {
	st := Describe([]float64{1, 2, 3, 4})
	require.NotNil(t, st)
	assert.InDelta(t, 2.5, st.Median, 1e-9)
}

func TestHistogram(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	edges, counts := Histogram(values, 5)

	require.Len(t, edges, 6)
	require.Len(t, counts, 5)
	assert.Equal(t, []int{2, 2, 2, 2, 2}, counts)
	assert.Equal(t, 0.0, edges[0])
	assert.Equal(t, 9.0, edges[5])
}

func TestHistogramSingleValue(t *testing.T) {
	edges, counts := Histogram([]float64{50, 50, 50}, 10)
	assert.Equal(t, []float64{50, 50}, edges)
	assert.Equal(t, []int{3}, counts)
}

func TestHistogramEmpty(t *testing.T) {
	edges, counts := Histogram(nil, 10)
	assert.Nil(t, edges)
	assert.Nil(t, counts)
}
