package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/handsnap/internal/config"
	"github.com/ayusman/handsnap/internal/detector"
	"github.com/ayusman/handsnap/internal/gesture"
	"github.com/ayusman/handsnap/internal/speech"
	"github.com/ayusman/handsnap/internal/store"
)

func TestParseRunFlags(t *testing.T) {
	cfg, headless, err := parseRunFlags(config.Default(), []string{
		"-camera", "1",
		"-out", "shots",
		"-hold", "2s",
		"-preview", "0",
		"-quit-key", "x",
		"-timestamp-names=false",
		"-mirror=false",
		"-classifier", "template",
		"-fps", "15",
		"-python", "/opt/venv/bin/python",
		"-headless",
	})
	require.NoError(t, err)

	assert.True(t, headless)
	assert.Equal(t, 1, cfg.CameraID)
	assert.Equal(t, "shots", cfg.OutputDir)
	assert.Equal(t, 2*time.Second, cfg.Hold)
	assert.Equal(t, time.Duration(0), cfg.Preview)
	assert.Equal(t, "x", cfg.QuitKey)
	assert.False(t, cfg.TimestampNames)
	assert.False(t, cfg.Mirror)
	assert.Equal(t, config.ClassifierTemplate, cfg.Classifier)
	assert.Equal(t, 15, cfg.FPS)
	assert.Equal(t, "/opt/venv/bin/python", cfg.Python)
}

func TestParseRunFlags_KeepsBase(t *testing.T) {
	base := config.Default()
	base.OutputDir = "from-env"

	cfg, headless, err := parseRunFlags(base, nil)
	require.NoError(t, err)
	assert.False(t, headless)
	assert.Equal(t, base, cfg)
}

func TestParseRunFlags_Invalid(t *testing.T) {
	tests := [][]string{
		{"-hold", "0s"},
		{"-fps", "0"},
		{"-quit-key", "quit"},
		{"-classifier", "neural"},
		{"-bogus"},
		{"extra"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, _, err := parseRunFlags(config.Default(), args)
			assert.Error(t, err)
		})
	}
}

func TestBuildClassifier(t *testing.T) {
	vsign := detector.VSignLandmarks()
	palm := detector.OpenPalmLandmarks()

	t.Run("rule", func(t *testing.T) {
		c, err := buildClassifier(config.Default())
		require.NoError(t, err)
		assert.IsType(t, gesture.VSign{}, c)
	})

	t.Run("bundled template", func(t *testing.T) {
		cfg := config.Default()
		cfg.Classifier = config.ClassifierTemplate
		c, err := buildClassifier(cfg)
		require.NoError(t, err)
		assert.True(t, c.IsTarget(&vsign))
		assert.False(t, c.IsTarget(&palm))
	})

	t.Run("template file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vsign.json")
		data, err := json.Marshal([]gesture.Sample{{Landmarks: vsign.Points[:]}})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0644))

		cfg := config.Default()
		cfg.Classifier = config.ClassifierTemplate
		cfg.TemplatePath = path
		c, err := buildClassifier(cfg)
		require.NoError(t, err)
		assert.True(t, c.IsTarget(&vsign))
	})

	t.Run("missing template file", func(t *testing.T) {
		cfg := config.Default()
		cfg.Classifier = config.ClassifierTemplate
		cfg.TemplatePath = filepath.Join(t.TempDir(), "missing.json")
		_, err := buildClassifier(cfg)
		assert.Error(t, err)
	})
}

func TestBuildSpeaker_Mute(t *testing.T) {
	cfg := config.Default()
	cfg.Mute = true
	assert.IsType(t, speech.Silent{}, buildSpeaker(cfg))

	cfg.Mute = false
	cfg.SpeechCommand = "definitely-not-a-synthesizer-xyz"
	assert.IsType(t, speech.Silent{}, buildSpeaker(cfg))
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.OutputDir = dir

	t.Run("empty catalog", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, listCommand(cfg, nil, &out))
		assert.Equal(t, "No selfies recorded.\n", out.String())
	})

	st, err := store.New(cfg.DBPath())
	require.NoError(t, err)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, user := range []string{"Ann", "Bob", "Ann"} {
		require.NoError(t, st.Captures().Create(&store.Capture{
			ID:       string(rune('a' + i)),
			TakenAt:  base.Add(time.Duration(i) * time.Minute),
			Filename: "selfie_" + user + ".png",
			Username: user,
			Path:     filepath.Join(dir, "selfie_"+user+".png"),
		}))
	}
	require.NoError(t, st.Close())

	t.Run("all", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, listCommand(cfg, nil, &out))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 5)
		assert.True(t, strings.HasPrefix(lines[0], "ID"))
		assert.True(t, strings.HasPrefix(lines[1], "c "), "newest first with its ID")
		assert.Contains(t, lines[1], "Ann")
		assert.Contains(t, lines[2], "Bob")
		assert.Equal(t, "3 of 3 selfies", lines[4])
	})

	t.Run("by user with limit", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, listCommand(cfg, []string{"-user", "Ann", "-limit", "1"}, &out))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[1], "selfie_Ann.png")
		assert.Equal(t, "1 of 3 selfies", lines[2])
	})
}

// seedCatalog records one capture per user with an image file on disk.
func seedCatalog(t *testing.T, cfg config.Config, users ...string) []*store.Capture {
	t.Helper()

	st, err := store.New(cfg.DBPath())
	require.NoError(t, err)
	defer st.Close()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var captures []*store.Capture
	for i, user := range users {
		c := &store.Capture{
			ID:       user + "-id",
			TakenAt:  base.Add(time.Duration(i) * time.Minute),
			Filename: "selfie_" + user + ".png",
			Username: user,
			Path:     filepath.Join(cfg.OutputDir, "selfie_"+user+".png"),
		}
		require.NoError(t, os.WriteFile(c.Path, []byte("png"), 0644))
		require.NoError(t, st.Captures().Create(c))
		captures = append(captures, c)
	}
	return captures
}

func TestDeleteCommand(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	captures := seedCatalog(t, cfg, "Ann", "Bob", "Cy")

	var out bytes.Buffer
	require.NoError(t, deleteCommand(cfg, []string{"Ann-id"}, &out))
	assert.Equal(t, "Deleted Ann-id (Ann, selfie_Ann.png)\n", out.String())
	assert.NoFileExists(t, captures[0].Path)

	require.NoError(t, deleteCommand(cfg, []string{"-keep-files", "Bob-id"}, &out))
	assert.FileExists(t, captures[1].Path)

	require.NoError(t, os.Remove(captures[2].Path))
	require.NoError(t, deleteCommand(cfg, []string{"Cy-id"}, &out), "a missing image is not an error")

	st, err := store.New(cfg.DBPath())
	require.NoError(t, err)
	defer st.Close()
	n, err := st.Captures().Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	t.Run("unknown id", func(t *testing.T) {
		err := deleteCommand(cfg, []string{"nope"}, &out)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("no ids", func(t *testing.T) {
		assert.Error(t, deleteCommand(cfg, nil, &out))
	})
}

func TestMigrateCommand(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()

	var out bytes.Buffer
	require.NoError(t, migrateCommand(cfg, []string{"status"}, &out))
	assert.Contains(t, out.String(), "at version 1 (dirty: false)")
	assert.Contains(t, out.String(), cfg.DBPath())

	out.Reset()
	require.NoError(t, migrateCommand(cfg, []string{"down"}, &out))
	assert.Contains(t, out.String(), "at version 0 (dirty: false)")

	out.Reset()
	require.NoError(t, migrateCommand(cfg, []string{"up"}, &out))
	assert.Contains(t, out.String(), "at version 1 (dirty: false)")

	t.Run("unknown action", func(t *testing.T) {
		out.Reset()
		err := migrateCommand(cfg, []string{"sideways"}, &out)
		assert.Error(t, err)
		assert.Contains(t, out.String(), "Actions:")
	})

	t.Run("missing action", func(t *testing.T) {
		assert.Error(t, migrateCommand(cfg, nil, &out))
	})
}
