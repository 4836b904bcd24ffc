package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

const (
	sproutDrawing = `{"color":"green","strokes":[[[0,0],[20,0]],[[0,10],[10,10]],[[0,20],[10,20]]]}`
	grownDrawing  = `{"color":"green","strokes":[[[0,0],[100,0]],[[0,10],[100,10]],[[0,20],[100,20]],[[0,30],[100,30]]]}`
)

type CLITestSuite struct {
	suite.Suite
	dir string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *CLITestSuite) writeDrawing(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs one garden invocation against a file store in the test dir
func (s *CLITestSuite) execute(args ...string) (string, error) {
	colorFlag, nameFlag = "", ""
	noSnapshot, previewFlag, confirmRelease, healAll, doctorFix = false, false, false, false, false
	speciesFilter = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{
		"--env-file", "",
		"--store", "file",
		"--data-dir", s.dir,
		"--log-level", "error",
	}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	closeApp()
	return out.String(), err
}

func (s *CLITestSuite) TestClassify() {
	out, err := s.execute("classify", s.writeDrawing("sprout.json", sproutDrawing))
	s.Require().NoError(err)

	s.Contains(out, "Species:     Sprout")
	s.Contains(out, "Element:     grass")
	s.Contains(out, "Confidence:  80%")
	s.Contains(out, "HP 40  ATK 10  DEF 13")

	out, err = s.execute("list")
	s.Require().NoError(err)
	s.Contains(out, "The garden is empty")
}

func (s *CLITestSuite) TestCreatureLifecycle() {
	sprout := s.writeDrawing("sprout.json", sproutDrawing)
	grown := s.writeDrawing("grown.json", grownDrawing)

	out, err := s.execute("hatch", sprout, "--name", "Fern")
	s.Require().NoError(err)
	s.Contains(out, "Hatched a grass sprout!")
	s.Contains(out, "Fern")

	out, err = s.execute("list")
	s.Require().NoError(err)
	s.Contains(out, "Fern")
	s.Contains(out, "40/40")

	out, err = s.execute("damage", "plant", "30")
	s.Require().NoError(err)
	s.Contains(out, "Fern is at 10/40")

	out, err = s.execute("grow", "plant", grown, "--preview")
	s.Require().NoError(err)
	s.Contains(out, "x1.80")

	out, err = s.execute("grow", "plant", grown)
	s.Require().NoError(err)
	s.Contains(out, "Fern grew to level 2")
	s.Contains(out, "HP 40 -> 72  ATK 10 -> 18  DEF 13 -> 23")

	out, err = s.execute("victory")
	s.Require().NoError(err)
	s.Contains(out, "Fern has won 1 battles")

	out, err = s.execute("show")
	s.Require().NoError(err)
	s.Contains(out, "Fern (selected)")
	s.Contains(out, "Health:      72/72")
	s.Contains(out, "snapshot")

	_, err = s.execute("release", "plant")
	s.True(errors.IsFailedPrecondition(err))

	out, err = s.execute("release", "plant", "--yes")
	s.Require().NoError(err)
	s.Contains(out, "Fern was released")

	out, err = s.execute("list")
	s.Require().NoError(err)
	s.Contains(out, "The garden is empty")
}

func (s *CLITestSuite) TestSQLiteStoreOnFreshDataDir() {
	dataDir := filepath.Join(s.dir, "not-yet-created")
	sprout := s.writeDrawing("sprout.json", sproutDrawing)
	sqliteArgs := []string{"--store", "sqlite", "--data-dir", dataDir}

	out, err := s.execute(append(sqliteArgs, "list")...)
	s.Require().NoError(err)
	s.Contains(out, "The garden is empty")
	s.FileExists(filepath.Join(dataDir, "garden.db"))

	_, err = s.execute(append(sqliteArgs, "hatch", sprout, "--name", "Fern")...)
	s.Require().NoError(err)

	out, err = s.execute(append(sqliteArgs, "list")...)
	s.Require().NoError(err)
	s.Contains(out, "Fern")
}

func (s *CLITestSuite) TestListBySpecies() {
	sprout := s.writeDrawing("sprout.json", sproutDrawing)
	_, err := s.execute("hatch", sprout, "--name", "Fern")
	s.Require().NoError(err)

	out, err := s.execute("list", "--species", "sprot")
	s.Require().NoError(err)
	s.Contains(out, "Fern")

	out, err = s.execute("list", "--species", "Bloom")
	s.Require().NoError(err)
	s.Contains(out, "No bloom creatures in the garden.")
	s.NotContains(out, "Fern")

	_, err = s.execute("list", "--species", "cactus")
	s.True(errors.IsInvalidArgument(err))
}

func (s *CLITestSuite) TestHealAll() {
	sprout := s.writeDrawing("sprout.json", sproutDrawing)
	_, err := s.execute("hatch", sprout, "--no-snapshot")
	s.Require().NoError(err)
	_, err = s.execute("damage", "plant", "100")
	s.Require().NoError(err)

	out, err := s.execute("heal", "--all")
	s.Require().NoError(err)
	s.Contains(out, "Healed 1 creatures")

	_, err = s.execute("heal")
	s.True(errors.IsInvalidArgument(err))
}

func (s *CLITestSuite) TestSelectUnknown() {
	_, err := s.execute("select", "plant_404")
	s.True(errors.IsNotFound(err))
	s.Equal(3, errors.GetCode(err).ExitStatus())
}

func (s *CLITestSuite) TestDoctor() {
	out, err := s.execute("doctor")
	s.Require().NoError(err)
	s.Contains(out, "No roster stored yet")

	path := filepath.Join(s.dir, "garden_roster.json")
	s.Require().NoError(os.WriteFile(path, []byte(`{"plants": [`), 0o600))

	out, err = s.execute("doctor")
	s.True(errors.IsDataLoss(err))
	s.Contains(out, "corrupt")

	out, err = s.execute("doctor", "--fix")
	s.Require().NoError(err)
	s.Contains(out, "Reset to an empty roster")

	s.Require().NoError(os.WriteFile(path, []byte(
		`{"plants":[{"id":"plant_1","species":"sprout","element":"grass","displayName":"Bud",`+
			`"level":1,"maxHealth":40,"attack":10,"defense":13,"currentHealth":99,"color":"green"}],`+
			`"selectedPlantId":"plant_7"}`), 0o600))

	out, err = s.execute("doctor")
	s.True(errors.IsFailedPrecondition(err))
	s.Contains(out, "found 2 problems")

	_, err = s.execute("doctor", "--fix")
	s.Require().NoError(err)

	out, err = s.execute("doctor")
	s.Require().NoError(err)
	s.Contains(out, "Checked 1 creatures, found 0 problems")
}

func (s *CLITestSuite) TestInvalidStore() {
	_, err := s.execute("--store", "s3", "list")
	s.True(errors.IsInvalidArgument(err))
}
