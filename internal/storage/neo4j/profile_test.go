package neo4j

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/job-discovery/internal/domain/job"
)

type fakeReader struct {
	records []*neo4j.Record
	err     error
	params  map[string]any
}

func (f *fakeReader) QueryRead(_ context.Context, _ string, params map[string]any) ([]*neo4j.Record, error) {
	f.params = params
	return f.records, f.err
}

func TestFindUser(t *testing.T) {
	reader := &fakeReader{records: []*neo4j.Record{{
		Keys:   []string{"id", "location", "storedSkills", "skills"},
		Values: []any{"u1", " Madrid ", []any{"Go", "react"}, []any{"React", "Kubernetes", nil}},
	}}}

	user, err := NewProfileStore(reader).FindUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Madrid", user.Location)
	assert.Equal(t, []string{"Go", "react", "Kubernetes"}, user.Skills)
	assert.Equal(t, map[string]any{"userId": "u1"}, reader.params)
}

func TestFindUser_NotFound(t *testing.T) {
	_, err := NewProfileStore(&fakeReader{}).FindUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, job.ErrUserNotFound)
}

func TestFindUser_QueryError(t *testing.T) {
	cause := errors.New("connection refused")
	_, err := NewProfileStore(&fakeReader{err: cause}).FindUser(context.Background(), "u1")
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, job.ErrUserNotFound)
}
