package firestore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

func TestNew_RequiresProjectID(t *testing.T) {
	_, err := New(context.Background(), Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "project id is required")
}

// The tests below need a running emulator, e.g.
// gcloud emulators firestore start --host-port=localhost:8081
func emulatorStore(t *testing.T) *Store {
	t.Helper()

	host := os.Getenv(emulatorEnv)
	if host == "" {
		t.Skip(emulatorEnv + " not set")
	}

	s, err := New(context.Background(), Config{ProjectID: "classroom-viewer-test", EmulatorHost: host, ProbeCollection: "slaytKategoriAdlari"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStore_Emulator(t *testing.T) {
	s := emulatorStore(t)
	ctx := context.Background()

	category := "Kesirler-" + time.Now().Format("150405.000000")
	names := s.client.Collection("slaytKategoriAdlari")

	_, _, err := names.Add(ctx, map[string]any{"name": category})
	require.NoError(t, err)

	coll := s.client.Collection(category)
	_, _, err = coll.Add(ctx, map[string]any{"name": "Kesirlere Giriş", "type": "slayt", "grade": 5})
	require.NoError(t, err)
	_, _, err = coll.Add(ctx, map[string]any{"name": "Ondalık", "type": "slayt", "grade": 6})
	require.NoError(t, err)

	got, err := s.CategoryNames(ctx, "slaytKategoriAdlari")
	require.NoError(t, err)
	assert.Contains(t, got, category)

	docs, err := s.DocumentsByGrade(ctx, category, domain.Grade(5))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Kesirlere Giriş", docs[0].Name)

	assert.NoError(t, s.Check(ctx))
	assert.Equal(t, "content-store", s.Name())
}
