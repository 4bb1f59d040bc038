package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/model"
)

func TestSample_IsConsistent(t *testing.T) {
	snap := Sample()
	assert.Len(t, snap.Sources, 6)
	assert.Len(t, snap.Reports, 5)
	assert.Empty(t, Audit(snap))
}

func TestWriteFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	snap := Sample()

	require.NoError(t, WriteFile(path, snap))
	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestLoad(t *testing.T) {
	snap, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Sample(), snap)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: [unclosed"), 0o644))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "parse seed file")
}

func TestAudit(t *testing.T) {
	snap := Sample()
	snap.Sources = append(snap.Sources, snap.Sources[0])
	snap.Reports[0].WaterSourceID = "99"
	snap.Reports[1].Status = model.StatusNew
	snap.Reports[2].WaterSourceID = model.NewLocationSourceID

	issues := Audit(snap)
	assert.Contains(t, issues, "source 1: duplicate id")
	assert.Contains(t, issues, "report RPT-001: water source 99 is not registered")
	assert.Contains(t, issues, "report RPT-002: resolution must be set exactly when status is resolved")
	for _, issue := range issues {
		assert.NotContains(t, issue, "RPT-003")
	}
}
