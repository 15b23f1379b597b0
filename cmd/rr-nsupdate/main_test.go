package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-nsupdate/internal/dns/common/log"
	"github.com/haukened/rr-nsupdate/internal/dns/config"
	"github.com/haukened/rr-nsupdate/internal/dns/domain"
	"github.com/haukened/rr-nsupdate/internal/dns/nsupdate"
)

const testZone = `zone_root: example.com
www:
  A: "192.0.2.1"
mail:
  A: "192.0.2.25"
`

func TestMain(m *testing.M) {
	log.SetLogger(log.NewNoopLogger())
	os.Exit(m.Run())
}

// testConfig returns the default configuration pointed at a script with the given content.
func testConfig(t *testing.T, script string) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "update.txt")
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	cfg := config.DEFAULT_APP_CONFIG
	cfg.Env = "dev"
	cfg.Script = path
	return &cfg
}

func withZoneDir(t *testing.T, cfg *config.AppConfig) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "example.yaml"), []byte(testZone), 0644))
	cfg.ZoneDir = dir
}

func TestBuildApplication_Minimal(t *testing.T) {
	cfg := testConfig(t, "send\n")
	app, err := buildApplication(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.journal)
	assert.Empty(t, app.zones.Zones())

	sum, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Batches)
}

func TestBuildApplication_BadZoneDir(t *testing.T) {
	cfg := testConfig(t, "send\n")
	cfg.ZoneDir = filepath.Join(t.TempDir(), "missing")

	_, err := buildApplication(cfg)
	assert.Error(t, err)
}

func TestBuildApplication_BadJournalPath(t *testing.T) {
	cfg := testConfig(t, "send\n")
	cfg.JournalPath = filepath.Join(t.TempDir(), "missing", "journal.db")

	_, err := buildApplication(cfg)
	assert.Error(t, err)
}

func TestRun_AppliesAgainstLoadedZones(t *testing.T) {
	cfg := testConfig(t, `; rotate www
update delete www.example.com. A
update add www.example.com. 300 IN A 192.0.2.2
update add _sip._tcp.example.com. 300 IN SRV 0 10 5060 sip.example.com.
send
`)
	withZoneDir(t, cfg)

	app, err := buildApplication(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	sum, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Applied)

	recs, ok := app.zones.FindRecords("www.example.com.", domain.RRTypeA, domain.RRClassIN)
	require.True(t, ok)
	require.Len(t, recs, 1)
	assert.Equal(t, []byte{192, 0, 2, 2}, recs[0].Data)

	_, ok = app.zones.FindRecords("_sip._tcp.example.com.", domain.RRTypeSRV, domain.RRClassIN)
	assert.True(t, ok)

	require.Len(t, app.history.Recent(0), 1)
	assert.Equal(t, 3, app.history.Recent(0)[0].Applied)
}

func TestRun_JournalSurvivesRestart(t *testing.T) {
	journalPath := filepath.Join(t.TempDir(), "journal.db")

	cfg := testConfig(t, `update add new.example.com. 60 IN TXT "hello"
update delete mail.example.com. A
send
`)
	withZoneDir(t, cfg)
	cfg.JournalPath = journalPath

	app, err := buildApplication(cfg)
	require.NoError(t, err)
	_, err = app.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, app.Close())

	// restart with the same zones and journal but an empty script
	cfg2 := testConfig(t, "")
	cfg2.ZoneDir = cfg.ZoneDir
	cfg2.JournalPath = journalPath

	app2, err := buildApplication(cfg2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app2.Close() })

	_, ok := app2.zones.FindRecords("new.example.com.", domain.RRTypeTXT, domain.RRClassIN)
	assert.True(t, ok, "journaled add replayed")
	_, ok = app2.zones.FindRecords("mail.example.com.", domain.RRTypeA, domain.RRClassIN)
	assert.False(t, ok, "journaled delete replayed over zone file")
	assert.Equal(t, uint64(2), app2.journal.Stats().Count)
}

func TestBuildApplication_JournalReset(t *testing.T) {
	journalPath := filepath.Join(t.TempDir(), "journal.db")

	cfg := testConfig(t, "update add new.example.com. 60 IN A 192.0.2.9\nsend\n")
	cfg.JournalPath = journalPath
	app, err := buildApplication(cfg)
	require.NoError(t, err)
	_, err = app.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, app.Close())

	cfg2 := testConfig(t, "")
	cfg2.JournalPath = journalPath
	cfg2.JournalReset = true
	app2, err := buildApplication(cfg2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app2.Close() })

	_, ok := app2.zones.FindRecords("new.example.com.", domain.RRTypeA, domain.RRClassIN)
	assert.False(t, ok, "reset journal is not replayed")
	assert.Zero(t, app2.journal.Stats().Count)
}

func TestRun_FailedUpdates(t *testing.T) {
	cfg := testConfig(t, "update delete ghost.example.com. A\nsend\n")
	withZoneDir(t, cfg)

	app, err := buildApplication(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	sum, err := app.Run(context.Background())
	assert.ErrorIs(t, err, errFailedUpdates)
	assert.Equal(t, 1, sum.Failed)
}

func TestRun_ParseError(t *testing.T) {
	cfg := testConfig(t, "update add www.example.com. 300 IN PTR host.example.com.\nsend\n")

	app, err := buildApplication(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	_, err = app.Run(context.Background())
	var pe *nsupdate.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Line)
	assert.ErrorIs(t, err, nsupdate.ErrRecordType)
	assert.Zero(t, app.zones.Count(), "nothing applied after a parse error")
}

func TestRun_MissingScript(t *testing.T) {
	cfg := testConfig(t, "send\n")
	cfg.Script = filepath.Join(t.TempDir(), "nope.txt")

	app, err := buildApplication(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	_, err = app.Run(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_DryRun(t *testing.T) {
	cfg := testConfig(t, `update add api.example.com. 60 IN A 192.0.2.80
update delete www.example.com. A
send
`)
	withZoneDir(t, cfg)
	cfg.DryRun = true

	app, err := buildApplication(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	sum, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Skipped)
	require.Len(t, sum.Messages, 1)
	assert.Equal(t, "example.com", sum.Messages[0].Zone)
	assert.NotEmpty(t, sum.Messages[0].Wire)

	_, ok := app.zones.FindRecords("api.example.com.", domain.RRTypeA, domain.RRClassIN)
	assert.False(t, ok, "dry run leaves the store untouched")
	_, ok = app.zones.FindRecords("www.example.com.", domain.RRTypeA, domain.RRClassIN)
	assert.True(t, ok)
}

func TestRun_Cancelled(t *testing.T) {
	cfg := testConfig(t, "update add a.example.com. 60 IN A 192.0.2.1\nsend\n")
	app, err := buildApplication(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = app.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApplication_CloseIdempotent(t *testing.T) {
	cfg := testConfig(t, "send\n")
	cfg.JournalPath = filepath.Join(t.TempDir(), "journal.db")

	app, err := buildApplication(cfg)
	require.NoError(t, err)
	assert.NoError(t, app.Close())
	assert.NoError(t, app.Close())
}
