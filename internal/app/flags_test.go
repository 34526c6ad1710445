package app

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)

	err := fs.Parse([]string{"-sim", "life", "-scale", "2", "-seed", "7", "-set", "w=64", "-set", "h = 32"})
	require.NoError(t, err)
	require.Equal(t, "life", cfg.Sim)
	require.Equal(t, 2, cfg.Scale)
	require.Equal(t, int64(7), cfg.Seed)
	require.Equal(t, map[string]string{"w": "64", "h": "32"}, cfg.SimConfig())
}

func TestSetRejectsBarePair(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	fs.SetOutput(discard{})
	cfg.Bind(fs)
	require.Error(t, fs.Parse([]string{"-set", "beta"}))
}

func TestLaterPairsWin(t *testing.T) {
	cfg := NewConfig()
	cfg.Set = KVList{"n=64", "beta=0.5", "beta=0.6"}
	require.Equal(t, map[string]string{"n": "64", "beta": "0.6"}, cfg.SimConfig())
	require.Equal(t, "n=64,beta=0.5,beta=0.6", cfg.Set.String())
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
