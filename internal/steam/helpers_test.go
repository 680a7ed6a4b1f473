package steam

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/roach88/steam/internal/tables"
)

// newTestResolver returns a resolver over the embedded tables with logging
// discarded.
func newTestResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	logger, _ := test.NewNullLogger()
	opts = append([]Option{WithLogger(logger)}, opts...)
	r, err := NewResolver(tables.Default(), opts...)
	require.NoError(t, err)
	return r
}

// resolve builds a state from alternating property/value pairs and
// resolves it, failing the test on error.
func resolve(t *testing.T, r *Resolver, name string, kv ...any) *State {
	t.Helper()
	s := build(name, kv...)
	require.NoError(t, r.Resolve(s), "resolve %s", name)
	return s
}

func build(name string, kv ...any) *State {
	s := NewState(name)
	for i := 0; i+1 < len(kv); i += 2 {
		s.Set(kv[i].(Property), kv[i+1].(float64))
	}
	return s
}
