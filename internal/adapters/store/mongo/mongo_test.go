package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(context.Background(), Config{Database: "okul"})
	require.ErrorContains(t, err, "uri is required")

	_, err = New(context.Background(), Config{URI: "mongodb://localhost:27017"})
	require.ErrorContains(t, err, "database is required")

	_, err = New(context.Background(), Config{URI: "postgres://nope", Database: "okul"})
	require.Error(t, err)
}

func TestCheck_UnreachableIsUnavailable(t *testing.T) {
	s, err := New(context.Background(), Config{
		URI:            "mongodb://127.0.0.1:1",
		Database:       "okul",
		ConnectTimeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	err = s.Check(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Equal(t, "content-store", s.Name())
}

// Needs a server, e.g. docker run -p 27017:27017 mongo:7 and
// MONGO_TEST_URI=mongodb://localhost:27017.
func TestStore_Live(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	dbName := "viewer_test_" + time.Now().Format("150405")

	s, err := New(ctx, Config{URI: uri, Database: dbName})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.db.Drop(context.Background())
		_ = s.Close(context.Background())
	})

	_, err = s.db.Collection("kategoriAdlari").InsertMany(ctx, []any{
		bson.M{"name": "Kesirler"},
		bson.M{"name": ""},
	})
	require.NoError(t, err)

	created := time.Date(2025, time.September, 17, 9, 0, 0, 0, time.UTC)
	_, err = s.db.Collection("Kesirler").InsertMany(ctx, []any{
		bson.M{"name": "Kesirler Testi", "type": "test", "grade": 5, "createdAt": created, "duration": 30},
		bson.M{"name": "Başka Sınıf", "type": "test", "grade": 7},
	})
	require.NoError(t, err)

	names, err := s.CategoryNames(ctx, "kategoriAdlari")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kesirler"}, names)

	docs, err := s.DocumentsByGrade(ctx, "Kesirler", domain.Grade(5))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.NotNil(t, docs[0].CreatedAt)
	assert.True(t, created.Equal(*docs[0].CreatedAt))
	require.NotNil(t, docs[0].DurationMin)
	assert.InDelta(t, 30.0, *docs[0].DurationMin, 0)

	require.NoError(t, s.Check(ctx))
}
