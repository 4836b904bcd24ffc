package roster_test

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/pkg/clock"
	"github.com/KirkDiggler/doodle-garden/internal/repositories/roster"
	"github.com/KirkDiggler/doodle-garden/internal/testutils"
)

// backendSuite runs the same contract against every store backend
type backendSuite struct {
	suite.Suite
	ctx     context.Context
	repo    roster.Repository
	corrupt func(data []byte)
}

func (s *backendSuite) record() *roster.Record {
	second := testutils.CreateTestEntry("plant_2")
	second.Species = creature.SpeciesBloom
	second.DrawingImage = nil
	second.GrowthCount = 2
	second.Level = 3
	second.GrowthHistory = []creature.GrowthRecord{
		{At: testutils.FixtureTime, Score: 120, Multiplier: 1.52, Level: 2},
		{At: testutils.FixtureTime, Score: 250, Multiplier: 1.8, Level: 3},
	}

	return &roster.Record{
		Plants:          []*creature.Entry{testutils.CreateTestEntry("plant_1"), second},
		SelectedPlantID: "plant_2",
	}
}

func (s *backendSuite) TestLoadMissingIsEmpty() {
	out, err := s.repo.Load(s.ctx, roster.LoadInput{})

	s.Require().NoError(err)
	s.False(out.Found)
	s.Empty(out.Record.Plants)
	s.Empty(out.Record.SelectedPlantID)
}

func (s *backendSuite) TestRoundTrip() {
	want := s.record()

	_, err := s.repo.Save(s.ctx, roster.SaveInput{Record: want})
	s.Require().NoError(err)

	out, err := s.repo.Load(s.ctx, roster.LoadInput{})
	s.Require().NoError(err)
	s.True(out.Found)
	s.Require().Len(out.Record.Plants, 2)
	s.Equal(want.SelectedPlantID, out.Record.SelectedPlantID)
	for i := range want.Plants {
		s.Equal(*want.Plants[i], *out.Record.Plants[i])
	}
	s.Equal(want.Plants[0].DrawingImage, out.Record.Plants[0].DrawingImage)
}

func (s *backendSuite) TestSaveOverwrites() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Record: s.record()})
	s.Require().NoError(err)

	_, err = s.repo.Save(s.ctx, roster.SaveInput{Record: &roster.Record{}})
	s.Require().NoError(err)

	out, err := s.repo.Load(s.ctx, roster.LoadInput{})
	s.Require().NoError(err)
	s.True(out.Found)
	s.Empty(out.Record.Plants)
}

func (s *backendSuite) TestSaveNilRecord() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *backendSuite) TestMalformedIsDataLoss() {
	s.corrupt([]byte(`{"plants": [ {"id": "plant_1", `))

	out, err := s.repo.Load(s.ctx, roster.LoadInput{})
	s.Nil(out)
	s.True(errors.IsDataLoss(err))
}

type RedisBackendTestSuite struct {
	backendSuite
}

func TestRedisBackendSuite(t *testing.T) {
	suite.Run(t, new(RedisBackendTestSuite))
}

func (s *RedisBackendTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	repo, err := roster.NewRedis(&roster.RedisConfig{Client: client, Key: "test:roster"})
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.repo = repo
	s.corrupt = func(data []byte) {
		s.Require().NoError(mr.Set("test:roster", string(data)))
	}
}

func (s *RedisBackendTestSuite) TestStoredUnderOneKey() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	repo, err := roster.NewRedis(&roster.RedisConfig{Client: client})
	s.Require().NoError(err)

	_, err = repo.Save(s.ctx, roster.SaveInput{Record: s.record()})
	s.Require().NoError(err)

	s.Equal([]string{roster.DefaultKey}, mr.Keys())
	raw, err := mr.Get(roster.DefaultKey)
	s.Require().NoError(err)

	var wire map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal([]byte(raw), &wire))
	s.Contains(wire, "plants")
	s.Contains(wire, "selectedPlantId")
}

func (s *RedisBackendTestSuite) TestConfigValidation() {
	_, err := roster.NewRedis(&roster.RedisConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = roster.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))
}

type FileBackendTestSuite struct {
	backendSuite
	dir string
}

func TestFileBackendSuite(t *testing.T) {
	suite.Run(t, new(FileBackendTestSuite))
}

func (s *FileBackendTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	repo, err := roster.NewFile(&roster.FileConfig{Dir: s.dir, Key: "garden:roster"})
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.repo = repo
	s.corrupt = func(data []byte) {
		s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "garden_roster.json"), data, 0o600))
	}
}

func (s *FileBackendTestSuite) TestNoTemporaryFilesRemain() {
	for i := 0; i < 3; i++ {
		_, err := s.repo.Save(s.ctx, roster.SaveInput{Record: s.record()})
		s.Require().NoError(err)
	}

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("garden_roster.json", entries[0].Name())
}

func (s *FileBackendTestSuite) TestImageIsBase64OnDisk() {
	rec := s.record()
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Record: rec})
	s.Require().NoError(err)

	raw, err := os.ReadFile(filepath.Join(s.dir, "garden_roster.json"))
	s.Require().NoError(err)
	s.Contains(string(raw), base64.StdEncoding.EncodeToString(rec.Plants[0].DrawingImage))
}

func (s *FileBackendTestSuite) TestConfigValidation() {
	_, err := roster.NewFile(&roster.FileConfig{})
	s.True(errors.IsInvalidArgument(err))
}

type SQLiteBackendTestSuite struct {
	backendSuite
	db *sql.DB
}

func TestSQLiteBackendSuite(t *testing.T) {
	suite.Run(t, new(SQLiteBackendTestSuite))
}

func (s *SQLiteBackendTestSuite) SetupTest() {
	db, err := sql.Open("sqlite", filepath.Join(s.T().TempDir(), "garden.db"))
	s.Require().NoError(err)
	s.db = db

	s.ctx = context.Background()
	repo, err := roster.NewSQL(s.ctx, &roster.SQLConfig{
		DB:      db,
		Dialect: roster.DialectSQLite,
		Clock:   &clock.Fixed{At: testutils.FixtureTime},
	})
	s.Require().NoError(err)

	s.repo = repo
	s.corrupt = func(data []byte) {
		_, err := db.Exec(
			`INSERT INTO garden_kv (key, value, updated_at) VALUES (?, ?, ?)`,
			roster.DefaultKey, string(data), testutils.FixtureTime,
		)
		s.Require().NoError(err)
	}
}

func (s *SQLiteBackendTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *SQLiteBackendTestSuite) TestConfigValidation() {
	_, err := roster.NewSQL(s.ctx, &roster.SQLConfig{DB: s.db, Dialect: "oracle"})
	s.True(errors.IsInvalidArgument(err))
}

type InMemoryBackendTestSuite struct {
	backendSuite
}

func TestInMemoryBackendSuite(t *testing.T) {
	suite.Run(t, new(InMemoryBackendTestSuite))
}

func (s *InMemoryBackendTestSuite) SetupTest() {
	repo := roster.NewInMemory()
	s.ctx = context.Background()
	s.repo = repo
	s.corrupt = repo.SetRaw
}

func TestDecodeRejectsNullEntries(t *testing.T) {
	_, err := roster.Decode([]byte(`{"plants":[null],"selectedPlantId":""}`))
	if !errors.IsDataLoss(err) {
		t.Fatalf("expected data loss, got %v", err)
	}
}
