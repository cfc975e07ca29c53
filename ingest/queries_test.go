package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadQueries(t *testing.T) {
	users, err := ReadQueries(strings.NewReader("alice\n\n  bob  \ncarol\nalice\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob", "carol", "alice"}, users)
}

func TestReadQueriesEmpty(t *testing.T) {
	users, err := ReadQueries(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestScanQueriesStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	var seen []string
	err := ScanQueries(strings.NewReader("a\nb\nc\n"), func(user string) error {
		seen = append(seen, user)
		if user == "b" {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, []string{"a", "b"}, seen)
}
