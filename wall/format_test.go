package wall_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fuyou/wall-engine/wall"
)

func TestFormatYen(t *testing.T) {
	cases := []struct {
		in   wall.Yen
		want string
	}{
		{wall.ZeroYen(), "¥0"},
		{wall.NewYenFromInt(500), "¥500"},
		{wall.NewYenFromInt(1030), "¥1,030"},
		{wall.NewYenFromInt(1_030_000), "¥1,030,000"},
		{wall.NewYenFromInt(-45_000), "-¥45,000"},
		{wall.MustParseYen("43300.5"), "¥43,301"}, // fractions round for display
	}

	for _, c := range cases {
		assert.Equal(t, c.want, wall.FormatYen(c.in))
	}
}

func TestFormatPercent_Clamps(t *testing.T) {
	assert.Equal(t, "0%", wall.FormatPercent(-5))
	assert.Equal(t, "49%", wall.FormatPercent(49))
	assert.Equal(t, "100%", wall.FormatPercent(250))
}

func TestDate_ElapsedMonths(t *testing.T) {
	assert.Equal(t, 1, wall.MustParseDate("2026-01-31").ElapsedMonths())
	assert.Equal(t, 6, wall.MustParseDate("2026-06-01").ElapsedMonths())
	assert.Equal(t, 12, wall.MustParseDate("2026-12-25").ElapsedMonths())
}

func TestDate_AddMonths_EndOfYearRollover(t *testing.T) {
	d := wall.MustParseDate("2026-11-01")
	assert.Equal(t, "2027-02-01", d.AddMonths(3).String())
}

func TestBracket_Limit(t *testing.T) {
	assert.Equal(t, "1030000", wall.Bracket103.Limit().String())
	assert.Equal(t, "1300000", wall.Bracket130.Limit().String())
	assert.Equal(t, "1500000", wall.Bracket150.Limit().String())

	// Unknown brackets normalize to 103
	assert.Equal(t, "1030000", wall.Bracket(99).Limit().String())
}
