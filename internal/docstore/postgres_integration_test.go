//go:build integration

package docstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/testutil/containers"
	"github.com/stretchr/testify/suite"
)

type PostgresSuite struct {
	suite.Suite
	ctx   context.Context
	pg    *containers.PostgresContainer
	store *docstore.Postgres
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = docstore.NewPostgres(s.pg.Pool)
}

func (s *PostgresSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx))
}

func (s *PostgresSuite) TestCreateIsConditional() {
	created, err := s.store.Create(s.ctx, "institutes", "Tech U", docstore.Fields{"instituteId": 11111})
	s.Require().NoError(err)
	s.True(created)

	created, err = s.store.Create(s.ctx, "institutes", "Tech U", docstore.Fields{"instituteId": 22222})
	s.Require().NoError(err)
	s.False(created)

	doc, err := s.store.Get(s.ctx, "institutes", "Tech U")
	s.Require().NoError(err)
	s.Equal(float64(11111), doc.Fields["instituteId"])
}

func (s *PostgresSuite) TestUpdateMergesAndReportsMissing() {
	s.Require().NoError(s.store.Put(s.ctx, "students", "a@x.co", docstore.Fields{"name": "A", "verified": false}))
	s.Require().NoError(s.store.Update(s.ctx, "students", "a@x.co", docstore.Fields{"verified": true}))

	doc, err := s.store.Get(s.ctx, "students", "a@x.co")
	s.Require().NoError(err)
	s.Equal("A", doc.Fields["name"])
	s.Equal(true, doc.Fields["verified"])

	s.ErrorIs(s.store.Update(s.ctx, "students", "ghost@x.co", docstore.Fields{"verified": true}), docstore.ErrNotFound)

	s.Require().NoError(s.store.Delete(s.ctx, "students", "a@x.co"))
	_, err = s.store.Get(s.ctx, "students", "a@x.co")
	s.ErrorIs(err, docstore.ErrNotFound)
}

func (s *PostgresSuite) TestQueryFilters() {
	s.Require().NoError(s.store.Put(s.ctx, "recruiters", "r1", docstore.Fields{"instituteIds": []int{10001, 10002}}))
	s.Require().NoError(s.store.Put(s.ctx, "recruiters", "r2", docstore.Fields{"instituteIds": []int{10003}}))

	docs, err := s.store.Query(s.ctx, docstore.Query{
		Collection: "recruiters",
		Filters:    []docstore.Filter{docstore.Where("instituteIds", docstore.OpArrayContains, 10002)},
	})
	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Equal("r1", docs[0].Key)
}

func (s *PostgresSuite) TestFetchPageMatchesInMemory() {
	memory := docstore.NewInMemory()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		fields := docstore.Fields{
			"instituteId": 10001 + (i%3)/2,
			// Pairs share a timestamp so ties are broken by key.
			"datePosted": base.Add(time.Duration(i/2) * time.Hour).Format(time.RFC3339),
		}
		key := fmt.Sprintf("job-%02d", i)
		s.Require().NoError(s.store.Put(s.ctx, "jobs", key, fields))
		s.Require().NoError(memory.Put(s.ctx, "jobs", key, fields))
	}

	for _, dir := range []docstore.Direction{docstore.Asc, docstore.Desc} {
		s.Run(string(dir), func() {
			req := docstore.PageRequest{
				Collection: "jobs",
				Filters:    []docstore.Filter{docstore.Where("instituteId", docstore.OpEqual, 10001)},
				OrderBy:    &docstore.OrderBy{Field: "datePosted", Direction: dir},
				PageSize:   2,
			}
			s.Equal(s.walk(memory, req), s.walk(s.store, req))
		})
	}
}

func (s *PostgresSuite) walk(store docstore.Store, req docstore.PageRequest) []string {
	var keys []string
	for {
		page, err := docstore.FetchPage(s.ctx, store, req)
		s.Require().NoError(err)
		if len(page.Results) == 0 {
			return keys
		}
		for _, d := range page.Results {
			keys = append(keys, d.Key)
		}
		req.Cursor = page.NextCursor
	}
}
