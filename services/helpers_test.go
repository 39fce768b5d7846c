package services

import (
	"testing"
	"time"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidStatusTransition(t *testing.T) {
	cases := []struct {
		name    string
		current models.ChampionshipStatus
		next    models.ChampionshipStatus
		want    bool
	}{
		{"pending to in_progress", models.ChampionshipPending, models.ChampionshipInProgress, true},
		{"in_progress to finished", models.ChampionshipInProgress, models.ChampionshipFinished, true},
		{"same status", models.ChampionshipInProgress, models.ChampionshipInProgress, true},
		{"pending to finished skips a step", models.ChampionshipPending, models.ChampionshipFinished, false},
		{"finished is terminal", models.ChampionshipFinished, models.ChampionshipInProgress, false},
		{"no going back", models.ChampionshipInProgress, models.ChampionshipPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isValidStatusTransition(tc.current, tc.next))
		})
	}
}

func TestValidateChampionshipDates(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)

	t.Run("valid range", func(t *testing.T) {
		assert.NoError(t, validateChampionshipDates(&start, &end))
	})

	t.Run("open ended", func(t *testing.T) {
		assert.NoError(t, validateChampionshipDates(&start, nil))
	})

	t.Run("missing start", func(t *testing.T) {
		err := validateChampionshipDates(nil, &end)
		assert.ErrorIs(t, err, ErrChampionshipDatesRequired)
	})

	t.Run("end before start", func(t *testing.T) {
		before := start.AddDate(0, -1, 0)
		err := validateChampionshipDates(&start, &before)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("end equals start", func(t *testing.T) {
		err := validateChampionshipDates(&start, &start)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestGetExtensionFromContentType(t *testing.T) {
	cases := map[string]string{
		"image/jpeg": ".jpg",
		"image/jpg":  ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	}
	for contentType, want := range cases {
		ext, err := GetExtensionFromContentType(contentType)
		require.NoError(t, err)
		assert.Equal(t, want, ext)
	}

	t.Run("svg with suffix", func(t *testing.T) {
		ext, err := GetExtensionFromContentType("image/svg+xml")
		require.NoError(t, err)
		assert.Equal(t, ".svg", ext)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := GetExtensionFromContentType("application/pdf")
		assert.Error(t, err)
	})
}
