package schemes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

func TestFilter(t *testing.T) {
	all := All()
	require.Len(t, all, 5)

	assert.Len(t, Filter(all, "", ""), 5)
	assert.Len(t, Filter(all, "all", ""), 5)
	assert.Len(t, Filter(all, domain.SchemeTypeLoan, ""), 4)

	subsidies := Filter(all, domain.SchemeTypeSubsidy, "")
	require.Len(t, subsidies, 1)
	assert.Equal(t, "Technology Upgradation Fund", subsidies[0].Title)

	got := Filter(all, domain.SchemeTypeLoan, "collateral")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)

	assert.Empty(t, Filter(all, domain.SchemeTypeSubsidy, "mudra"))
	assert.Len(t, Filter(all, "", "MUDRA"), 1)
}

func TestFind(t *testing.T) {
	s, ok := Find(3)
	require.True(t, ok)
	assert.Equal(t, "Stand-Up India Scheme", s.Title)

	_, ok = Find(42)
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Title = "changed"
	assert.NotEqual(t, "changed", All()[0].Title)
}
