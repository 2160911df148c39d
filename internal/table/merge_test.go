package table_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/abelzeko/dino-velocity/internal/entities"
	"github.com/abelzeko/dino-velocity/internal/table"
)

// MergeSuite exercises the join modes on the two sample datasets.
type MergeSuite struct {
	suite.Suite
	a *table.Table
	b *table.Table
}

func (s *MergeSuite) SetupTest() {
	s.a = table.New([]string{"NAME", "LEG_LENGTH", "DIET"})
	require.NoError(s.T(), s.a.AppendRow([]table.Cell{table.Value("Hadrosaurus"), table.Value("1.4"), table.Value("herbivore")}))
	require.NoError(s.T(), s.a.AppendRow([]table.Cell{table.Value("Euoplocephalus"), table.Value("1.6"), table.Value("herbivore")}))

	s.b = table.New([]string{"NAME", "STRIDE_LENGTH", "STANCE"})
	require.NoError(s.T(), s.b.AppendRow([]table.Cell{table.Value("Euoplocephalus"), table.Value("1.87"), table.Value("quadrupedal")}))
	require.NoError(s.T(), s.b.AppendRow([]table.Cell{table.Value("Deinonychus"), table.Value("1.21"), table.Value("bipedal")}))
}

func names(t *table.Table) []string {
	out := make([]string, 0, t.Len())
	for i := range t.Rows {
		c, _ := t.Get(i, "NAME")
		out = append(out, c.Value)
	}
	return out
}

// TestInner keeps only keys present in both tables.
func (s *MergeSuite) TestInner() {
	m, err := table.Merge(s.a, s.b, "NAME", table.JoinInner)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"NAME", "LEG_LENGTH", "DIET", "STRIDE_LENGTH", "STANCE"}, m.Columns)
	require.Equal(s.T(), []string{"Euoplocephalus"}, names(m))

	stride, _ := m.Get(0, "STRIDE_LENGTH")
	require.Equal(s.T(), table.Value("1.87"), stride)
}

// TestOuter keeps the union of keys ordered by key and null-fills either side.
func (s *MergeSuite) TestOuter() {
	m, err := table.Merge(s.a, s.b, "NAME", table.JoinOuter)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"Deinonychus", "Euoplocephalus", "Hadrosaurus"}, names(m))

	leg, _ := m.Get(0, "LEG_LENGTH")
	require.False(s.T(), leg.Valid, "Deinonychus has no left-side columns")
	stance, _ := m.Get(2, "STANCE")
	require.False(s.T(), stance.Valid, "Hadrosaurus has no right-side columns")
	diet, _ := m.Get(1, "DIET")
	require.Equal(s.T(), table.Value("herbivore"), diet)
}

// TestLeft keeps every left row in left order.
func (s *MergeSuite) TestLeft() {
	m, err := table.Merge(s.a, s.b, "NAME", table.JoinLeft)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"Hadrosaurus", "Euoplocephalus"}, names(m))
	stance, _ := m.Get(0, "STANCE")
	require.False(s.T(), stance.Valid)
}

// TestRight keeps every right row in right order.
func (s *MergeSuite) TestRight() {
	m, err := table.Merge(s.a, s.b, "NAME", table.JoinRight)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"Euoplocephalus", "Deinonychus"}, names(m))
	leg, _ := m.Get(1, "LEG_LENGTH")
	require.False(s.T(), leg.Valid)
}

// TestFanOut produces the cross product of duplicate keys.
func (s *MergeSuite) TestFanOut() {
	require.NoError(s.T(), s.a.AppendRow([]table.Cell{table.Value("Euoplocephalus"), table.Value("1.7"), table.Null}))
	require.NoError(s.T(), s.b.AppendRow([]table.Cell{table.Value("Euoplocephalus"), table.Value("1.9"), table.Value("quadrupedal")}))

	m, err := table.Merge(s.a, s.b, "NAME", table.JoinInner)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 4, m.Len())

	var pairs [][2]string
	for i := range m.Rows {
		l, _ := m.Get(i, "LEG_LENGTH")
		r, _ := m.Get(i, "STRIDE_LENGTH")
		pairs = append(pairs, [2]string{l.Value, r.Value})
	}
	require.Equal(s.T(), [][2]string{{"1.6", "1.87"}, {"1.6", "1.9"}, {"1.7", "1.87"}, {"1.7", "1.9"}}, pairs)
}

// TestOverlappingColumns suffixes non-key columns present on both sides.
func (s *MergeSuite) TestOverlappingColumns() {
	b := table.New([]string{"NAME", "DIET"})
	require.NoError(s.T(), b.AppendRow([]table.Cell{table.Value("Hadrosaurus"), table.Value("omnivore")}))

	m, err := table.Merge(s.a, b, "NAME", table.JoinInner)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"NAME", "LEG_LENGTH", "DIET_x", "DIET_y"}, m.Columns)
}

// TestMissingKey fails when either table lacks the key column.
func (s *MergeSuite) TestMissingKey() {
	_, err := table.Merge(s.a, s.b, "ID", table.JoinOuter)
	require.Error(s.T(), err)
	require.True(s.T(), entities.IsKind(err, entities.KindMissingColumn))

	noKey := table.New([]string{"STANCE"})
	_, err = table.Merge(s.a, noKey, "NAME", table.JoinInner)
	require.ErrorIs(s.T(), err, entities.ErrMissingColumn)
}

// TestInvalidMode rejects an out-of-range join mode.
func (s *MergeSuite) TestInvalidMode() {
	_, err := table.Merge(s.a, s.b, "NAME", table.JoinMode(42))
	require.True(s.T(), entities.IsKind(err, entities.KindInvalidArgument))
}

func TestMergeSuite(t *testing.T) {
	suite.Run(t, new(MergeSuite))
}

func TestParseJoinMode(t *testing.T) {
	for _, name := range []string{"inner", "left", "right", "outer"} {
		m, err := table.ParseJoinMode(name)
		require.NoError(t, err, name)
		require.Equal(t, name, m.String())
	}

	for _, name := range []string{"cross", "OUTER", " outer", "Inner"} {
		_, err := table.ParseJoinMode(name)
		require.Error(t, err, name)
		require.True(t, entities.IsKind(err, entities.KindInvalidArgument), name)
	}
}

func TestAppendRowWidth(t *testing.T) {
	tb := table.New([]string{"A", "B"})
	err := tb.AppendRow([]table.Cell{table.Value("1")})
	require.True(t, entities.IsKind(err, entities.KindInvalidArgument))
}
