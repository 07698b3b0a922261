package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/md5check/config"
	"github.com/ykhdr/md5check/internal/console"
	"github.com/ykhdr/md5check/internal/hashcrack"
	"github.com/ykhdr/md5check/internal/hashcrack/strategy"
)

func TestApplyCommandFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, applyCommandFlags(cfg, strategy.BruteforceType, []string{"-length", "3", "-alphabet", "xyz"}))
	assert.Equal(t, 3, cfg.BruteforceConfig.MaxLength)
	assert.Equal(t, "xyz", cfg.BruteforceConfig.Alphabet)

	cfg = config.DefaultConfig()
	require.NoError(t, applyCommandFlags(cfg, strategy.OnlineType, []string{"-delay", "1s"}))
	assert.Equal(t, time.Second, cfg.OnlineConfig.Delay)

	cfg = config.DefaultConfig()
	require.NoError(t, applyCommandFlags(cfg, strategy.DictionaryType, []string{"words.txt"}))
	assert.Equal(t, "words.txt", cfg.DictionaryConfig.File)

	cfg = config.DefaultConfig()
	assert.Error(t, applyCommandFlags(cfg, strategy.DictionaryType, nil))

	cfg = config.DefaultConfig()
	assert.Error(t, applyCommandFlags(cfg, strategy.BruteforceType, []string{"-alphabet", "aa"}))
}

func TestRunBruteforceCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")

	console.DisableColor()
	var buf bytes.Buffer
	reporter := console.NewReporter(&buf)

	opts := hashcrack.Options{InFile: in, OutFile: out, Single: true, Test: true}
	err := run(context.Background(), config.DefaultConfig(), reporter, opts, "bruteforce",
		[]string{"-length", "3", "-alphabet", "abcdefghijklmnopqrstuvwxyz"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "06d80eb0c50b49a509b49f2424e8c805:dog\nd077f244def8a70e5ea758bd8352fcd8:cat\n", string(data))
	assert.Contains(t, buf.String(), "Total hashes found: 2")
}

func TestRunUnknownCommand(t *testing.T) {
	console.DisableColor()
	reporter := console.NewReporter(&bytes.Buffer{})
	err := run(context.Background(), config.DefaultConfig(), reporter, hashcrack.Options{}, "rainbow", nil)
	assert.Error(t, err)
}

func TestWorkerStrategies(t *testing.T) {
	names := func(list []strategy.Strategy) []string {
		out := make([]string, 0, len(list))
		for _, s := range list {
			out = append(out, s.Name())
		}
		return out
	}

	list, err := workerStrategies(context.Background(), config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"bruteforce", "empty"}, names(list))

	cfg := config.DefaultConfig()
	cfg.Strategy = "dictionary"
	cfg.DictionaryConfig.File = filepath.Join(t.TempDir(), "words.txt")
	list, err = workerStrategies(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"dictionary", "bruteforce", "empty"}, names(list))
}
