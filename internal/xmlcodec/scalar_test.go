package xmlcodec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeplelab/go-bgg/internal/xmlcodec"
)

func TestBool10(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr bool
	}{
		{name: "one is true", input: "1", want: true},
		{name: "zero is false", input: "0", want: false},
		{name: "surrounding whitespace", input: " 1 ", want: true},
		{name: "true is rejected", input: "true", wantErr: true},
		{name: "empty is rejected", input: "", wantErr: true},
		{name: "two is rejected", input: "2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := xmlcodec.Bool10(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "typical playtime", input: "90", want: 90 * time.Minute},
		{name: "zero", input: "0", want: 0},
		{name: "negative is rejected", input: "-30", wantErr: true},
		{name: "fractional is rejected", input: "1.5", wantErr: true},
		{name: "text is rejected", input: "about an hour", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := xmlcodec.Minutes(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNullableRating(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		got, err := xmlcodec.NullableRating("7.25")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.InDelta(t, 7.25, *got, 0.0001)
	})

	t.Run("sentinel is absent", func(t *testing.T) {
		got, err := xmlcodec.NullableRating("N/A")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("other text is rejected", func(t *testing.T) {
		_, err := xmlcodec.NullableRating("none")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "none")
	})
}

func TestRank(t *testing.T) {
	t.Run("position", func(t *testing.T) {
		position, ranked, err := xmlcodec.Rank("431")
		require.NoError(t, err)
		assert.True(t, ranked)
		assert.Equal(t, 431, position)
	})

	t.Run("sentinel is unranked", func(t *testing.T) {
		position, ranked, err := xmlcodec.Rank("Not Ranked")
		require.NoError(t, err)
		assert.False(t, ranked)
		assert.Zero(t, position)
	})

	t.Run("negative is rejected", func(t *testing.T) {
		_, _, err := xmlcodec.Rank("-3")
		require.Error(t, err)
	})

	t.Run("other text is rejected", func(t *testing.T) {
		_, _, err := xmlcodec.Rank("unranked")
		require.Error(t, err)
	})
}

func TestDateTimeGrammars(t *testing.T) {
	t.Run("naive is interpreted as UTC", func(t *testing.T) {
		got, err := xmlcodec.NaiveUTC("2023-10-13 18:29:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 10, 13, 18, 29, 0, 0, time.UTC), got.UTC())
	})

	t.Run("compact carries its zone", func(t *testing.T) {
		got, err := xmlcodec.Compact("2019-01-02T11:33:11-06:00")
		require.NoError(t, err)
		_, offset := got.Zone()
		assert.Equal(t, -6*60*60, offset)
	})

	t.Run("long carries its zone", func(t *testing.T) {
		got, err := xmlcodec.Long("Thu, 14 Jun 2007 01:06:46 +0000")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2007, 6, 14, 1, 6, 46, 0, time.UTC), got.UTC())
	})

	t.Run("grammars agree on the same instant", func(t *testing.T) {
		naive, err := xmlcodec.NaiveUTC("2007-06-14 01:06:46")
		require.NoError(t, err)
		compact, err := xmlcodec.Compact("2007-06-14T01:06:46+00:00")
		require.NoError(t, err)
		long, err := xmlcodec.Long("Thu, 14 Jun 2007 01:06:46 +0000")
		require.NoError(t, err)

		assert.True(t, naive.Equal(compact))
		assert.True(t, compact.Equal(long))
	})

	t.Run("grammars do not accept each other", func(t *testing.T) {
		_, err := xmlcodec.NaiveUTC("2007-06-14T01:06:46+00:00")
		require.Error(t, err)
		_, err = xmlcodec.Compact("2007-06-14 01:06:46")
		require.Error(t, err)
		_, err = xmlcodec.Long("2007-06-14 01:06:46")
		require.Error(t, err)
	})
}
