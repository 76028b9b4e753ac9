package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	colorize.NoColor = true
	os.Exit(m.Run())
}

const testDocument = `Cryptography study notes
generated from the course outline
# Symmetric Encryption
**AES**: Advanced Encryption Standard
- 128-bit block
;
DES: Data Encryption Standard
![des](images/des.png)
;
# Hashing
SHA-256: 256-bit digest
| Algorithm | Bits |
|:---:|:---:|
| SHA-256 | 256 |
`

// fakeAnki is a minimal AnkiConnect that records the actions it receives
type fakeAnki struct {
	mu      sync.Mutex
	actions []string
	decks   []string
}

func (f *fakeAnki) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string          `json:"action"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.actions = append(f.actions, req.Action)
	f.mu.Unlock()

	var result any
	switch req.Action {
	case "version":
		result = 6
	case "deckNames":
		result = f.decks
	case "createDeck", "addNote":
		result = 1
	default:
		_, _ = fmt.Fprintf(w, `{"result": null, "error": "unsupported action %s"}`, req.Action)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"result": result, "error": nil})
}

func (f *fakeAnki) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.actions...)
}

type testEnv struct {
	dir        string
	configPath string
	anki       *fakeAnki
}

// newTestEnv writes the test document, an image directory and a config
// pointing at a fake AnkiConnect server
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	imgDir := filepath.Join(dir, "img")
	require.NoError(t, os.MkdirAll(imgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(imgDir, "des.png"), []byte("png"), 0644))

	input := filepath.Join(dir, "Cryptography.md")
	require.NoError(t, os.WriteFile(input, []byte(testDocument), 0644))

	fake := &fakeAnki{decks: []string{"Default", "Crypto", "Crypto::Hashing"}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	configPath := filepath.Join(dir, "config.toml")
	writeConfig(t, configPath, input, imgDir, srv.URL)

	return &testEnv{dir: dir, configPath: configPath, anki: fake}
}

func writeConfig(t *testing.T, path, input, imgDir, endpoint string) {
	t.Helper()

	content := fmt.Sprintf(`input = %q
deck = "Crypto"
skip_lines = 2
image_dir = %q
endpoint = %q
timeout = "2s"
`, input, imgDir, endpoint)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// resetFlags restores every flag so state does not leak between executions
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(RootCmd)
	t.Cleanup(func() { resetFlags(RootCmd) })

	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs(args)

	err := RootCmd.Execute()
	t.Log(errOut.String())
	return out.String(), err
}

func TestImportCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "import", "--config", env.configPath)

	require.NoError(t, err)
	assert.Contains(t, out, "2 sections")
	assert.Contains(t, out, "3 cards")
	assert.Contains(t, out, "Crypto::Symmetric_Encryption")
	assert.Contains(t, out, "✅ Imported into deck 'Crypto'.")

	assert.Equal(t, []string{
		"version",
		"createDeck",
		"createDeck", "addNote", "addNote",
		"createDeck", "addNote",
	}, env.anki.seen())
}

func TestImportCommandDeckOverride(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "import", "--config", env.configPath, "--deck", "Exam")

	require.NoError(t, err)
	assert.Contains(t, out, "Exam::Hashing")
	assert.Contains(t, out, "Imported into deck 'Exam'")
}

func TestImportCommandUnreachable(t *testing.T) {
	env := newTestEnv(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	writeConfig(t, env.configPath, filepath.Join(env.dir, "Cryptography.md"), filepath.Join(env.dir, "img"), srv.URL)

	_, err := execute(t, "import", "--config", env.configPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Is Anki running")
}

func TestImportCommandMissingInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := execute(t, "import", "--config", env.configPath, "--input", filepath.Join(env.dir, "nope.md"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "input document not found")
	assert.Empty(t, env.anki.seen())
}

func TestPreviewCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "preview", "--config", env.configPath)

	require.NoError(t, err)
	assert.Contains(t, out, "Section: Symmetric Encryption")
	assert.Contains(t, out, "Deck:    Crypto::Symmetric_Encryption")
	assert.Contains(t, out, "1. AES")
	assert.Contains(t, out, "• 128-bit block")
	assert.Contains(t, out, "Image: des.png")
	assert.Contains(t, out, "SHA-256 | 256")
	assert.Empty(t, env.anki.seen())
}

func TestPreviewCommandSummary(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "preview", "--config", env.configPath, "--summary")

	require.NoError(t, err)
	assert.Contains(t, out, "Symmetric Encryption")
	assert.Contains(t, out, "Crypto::Hashing")
	assert.NotContains(t, out, "Advanced Encryption Standard")
}

func TestPreviewCommandSectionFilter(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "preview", "--config", env.configPath, "--section", "hash")
	require.NoError(t, err)
	assert.Contains(t, out, "Section: Hashing")
	assert.NotContains(t, out, "Symmetric")

	_, err = execute(t, "preview", "--config", env.configPath, "--section", "quantum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no section matches "quantum"`)
}

func TestValidateCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "validate", "--config", env.configPath)

	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 2 sections, 3 cards")
}

func TestValidateCommandMissingImage(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.Remove(filepath.Join(env.dir, "img", "des.png")))

	out, err := execute(t, "validate", "--config", env.configPath)

	require.Error(t, err)
	assert.Contains(t, out, "has 1 validation errors")
	assert.Contains(t, out, "image not found")
}

func TestDeckListCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "deck", "ls", "--config", env.configPath)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"* Crypto [DEFAULT]", "  Crypto::Hashing", "  Default"}, lines)
}

func TestDeckCreateCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := execute(t, "deck", "create", "Crypto::Extra", "--config", env.configPath)

	require.NoError(t, err)
	assert.Contains(t, out, "Deck ready: Crypto::Extra")
	assert.Equal(t, []string{"createDeck"}, env.anki.seen())
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ankimark", "config.toml")

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Config file initialized at: "+path)
	assert.FileExists(t, path)

	out, err = execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Config file already exists")
}
