package main

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func TestStopwatchRecordsLaps(t *testing.T) {
	mock := clock.NewMock()
	watch := NewStopwatch(mock)

	require.NoError(t, watch.Time("build", func() error {
		mock.Add(2 * time.Second)
		return nil
	}))

	boom := errors.New("boom")
	err := watch.Time("query", func() error {
		mock.Add(500 * time.Millisecond)
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.Equal(t, []Lap{
		{Name: "build", Elapsed: 2 * time.Second},
		{Name: "query", Elapsed: 500 * time.Millisecond},
	}, watch.Laps())
	require.Equal(t, 2500*time.Millisecond, watch.Total())
}

func TestStopwatchLapsIsACopy(t *testing.T) {
	watch := NewStopwatch(clock.NewMock())
	require.NoError(t, watch.Time("build", func() error { return nil }))

	laps := watch.Laps()
	laps[0].Name = "changed"
	require.Equal(t, "build", watch.Laps()[0].Name)
}
