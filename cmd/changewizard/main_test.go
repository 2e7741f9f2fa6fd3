package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-changewizard"
	"github.com/goliatone/go-changewizard/internal/config"
	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/draft"
)

const lintFixture = `openapi: 3.0.3
info:
  title: fixture
  version: "1"
paths:
  /changes:
    post:
      operationId: createChange
      x-changewizard-endpoint: /remote
      requestBody:
        content:
          multipart/form-data:
            schema:
              type: object
              properties:
                title:
                  type: string
                  x-changewizard:
                    widget: text
                    colour: blue
                systems_affected:
                  type: array
                  items:
                    type: string
                  x-changewizard-widget: tags
                notes:
                  type: string
                  x-changewizard: plain
                backout_plan:
                  type: string
                  x-changewizard-required-when: "impact_level in [High"
      responses:
        "200":
          description: ok
`

func TestLintEmbeddedDocumentIsClean(t *testing.T) {
	violations, err := lintPaths(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestLintReportsUnsupportedExtensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(lintFixture), 0o600))

	violations, err := lintPaths(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, violations, 4)

	var lines []string
	for _, v := range violations {
		lines = append(lines, v.String())
	}
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, `operation > createChange -> unsupported extension key "endpoint"`)
	assert.Contains(t, joined, `properties.title > colour -> unsupported extension key "colour"`)
	assert.Contains(t, joined, "properties.notes -> x-changewizard must be an object, found string")
	assert.Contains(t, joined, "properties.backout_plan -> rules: missing closing ']'")
	assert.NotContains(t, joined, "systems_affected")
}

func TestLintMissingFile(t *testing.T) {
	_, err := lintPaths(context.Background(), []string{filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestWriteFormModel(t *testing.T) {
	form, err := changewizard.FormModel(context.Background(), changewizard.Sources{}, zap.NewNop())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeFormModel(&out, form))
	assert.Contains(t, out.String(), `"operationId": "createChange"`)
	assert.Contains(t, out.String(), `"name": "confirm_no_secrets"`)
}

func TestShowAndClearDraft(t *testing.T) {
	c := config.Default()
	c.Draft.Path = filepath.Join(t.TempDir(), "storage.json")

	var out bytes.Buffer
	require.NoError(t, showDraft(&out, c))
	assert.Equal(t, "No saved draft.\n", out.String())

	storage, err := draft.NewFileStorage(c.Draft.Path)
	require.NoError(t, err)
	require.NoError(t, draft.NewStore(storage).Save(changes.Draft{
		Title:           "Rotate TLS certs",
		SystemsAffected: []string{"edge-01"},
		Status:          changes.StatusPlanned,
	}))

	out.Reset()
	require.NoError(t, showDraft(&out, c))
	assert.Contains(t, out.String(), "title: Rotate TLS certs")
	assert.Contains(t, out.String(), "- edge-01")
	assert.NotContains(t, out.String(), "maintenance_window")

	out.Reset()
	require.NoError(t, clearDraft(&out, c))
	assert.Equal(t, "Draft cleared.\n", out.String())

	out.Reset()
	require.NoError(t, showDraft(&out, c))
	assert.Equal(t, "No saved draft.\n", out.String())
}

func TestBuildWizard(t *testing.T) {
	c := config.Default()
	c.Draft.Path = filepath.Join(t.TempDir(), "storage.json")
	c.UI.ThemeVariant = "plain"

	var out bytes.Buffer
	session, ctrl, err := buildWizard(context.Background(), c, &out, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)

	assert.NotNil(t, session)
	assert.Equal(t, 4, ctrl.Layout().Len())
	assert.Equal(t, 1, ctrl.Snapshot().CurrentStep)
}

func TestBuildWizardRejectsUnknownTheme(t *testing.T) {
	c := config.Default()
	c.Draft.Path = filepath.Join(t.TempDir(), "storage.json")
	c.UI.ThemeVariant = "neon"

	_, _, err := buildWizard(context.Background(), c, &bytes.Buffer{}, zap.NewNop())
	require.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	t.Cleanup(func() { rootFlags = globalFlags{} })
	rootFlags.baseURL = "https://changes.example"
	rootFlags.theme = "plain"

	c := config.Default()
	applyFlags(&c)
	assert.Equal(t, "https://changes.example", c.Server.BaseURL)
	assert.Equal(t, "plain", c.UI.ThemeVariant)
	assert.Equal(t, config.Default().Log.Level, c.Log.Level)
}

func TestShowConfigMasksSession(t *testing.T) {
	c := config.Default()
	c.Server.Session = "s3cr3t"

	var out bytes.Buffer
	require.NoError(t, showConfig(&out, c))
	assert.Contains(t, out.String(), "********")
	assert.NotContains(t, out.String(), "s3cr3t")
	assert.Contains(t, out.String(), "base_url: http://localhost:8000")
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changewizard", "config.yaml")

	var out bytes.Buffer
	require.NoError(t, initConfig(&out, path, "https://changes.example", false))
	assert.Equal(t, "Config written to "+path+"\n", out.String())

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(written), "base_url: https://changes.example")

	err = initConfig(&out, path, "https://changes.example", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Use --force to overwrite")

	require.NoError(t, initConfig(&out, path, "https://other.example", true))
}
