package neo4j

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/job-discovery/internal/domain"
	"github.com/honeycarbs/job-discovery/internal/domain/job"
)

// Ensure ProfileStore implements job.ProfileStore
var _ job.ProfileStore = (*ProfileStore)(nil)

// reader is the subset of pkg/neo4j.Client used by the store
type reader interface {
	QueryRead(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error)
}

// ProfileStore reads user profiles from the graph. It never writes.
type ProfileStore struct {
	client reader
}

// NewProfileStore creates a ProfileStore with a Neo4j client
func NewProfileStore(client reader) *ProfileStore {
	return &ProfileStore{client: client}
}

const findUserQuery = `
	MATCH (u:User {id: $userId})
	OPTIONAL MATCH (u)-[:HAS_SKILL]->(s:Skill)
	RETURN u.id AS id,
	       coalesce(u.location, '') AS location,
	       coalesce(u.skills, []) AS storedSkills,
	       collect(DISTINCT s.name) AS skills
`

// FindUser loads the stored skills and location of userID
func (r *ProfileStore) FindUser(ctx context.Context, userID string) (domain.AuthenticatedUser, error) {
	records, err := r.client.QueryRead(ctx, findUserQuery, map[string]any{"userId": userID})
	if err != nil {
		return domain.AuthenticatedUser{}, fmt.Errorf("find user %s: %w", userID, err)
	}
	if len(records) == 0 {
		return domain.AuthenticatedUser{}, fmt.Errorf("find user %s: %w", userID, job.ErrUserNotFound)
	}

	return parseUser(records[0]), nil
}

func parseUser(record *neo4j.Record) domain.AuthenticatedUser {
	user := domain.AuthenticatedUser{}
	if v, ok := record.Get("id"); ok {
		user.ID, _ = v.(string)
	}
	if v, ok := record.Get("location"); ok {
		loc, _ := v.(string)
		user.Location = strings.TrimSpace(loc)
	}

	seen := make(map[string]struct{})
	for _, key := range []string{"storedSkills", "skills"} {
		v, ok := record.Get(key)
		if !ok {
			continue
		}
		list, _ := v.([]any)
		for _, item := range list {
			name, _ := item.(string)
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, dup := seen[strings.ToLower(name)]; dup {
				continue
			}
			seen[strings.ToLower(name)] = struct{}{}
			user.Skills = append(user.Skills, name)
		}
	}

	return user
}
