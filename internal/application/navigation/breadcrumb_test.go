package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyTrail(t *testing.T) {
	trail := NewBuilder().Build()
	require.NotNil(t, trail)
	assert.Empty(t, trail)
}

func TestRecordTrail(t *testing.T) {
	trail := RecordTrail(
		"Harbour Bridge Upgrade", "/projects/p1",
		"Contract Variations", "/projects/p1/variations",
		"VO-003",
	)

	require.Len(t, trail, 4)
	assert.Equal(t, "Projects", trail[0].Title)
	require.NotNil(t, trail[0].URL)
	assert.Equal(t, "/projects", *trail[0].URL)

	assert.Equal(t, "Harbour Bridge Upgrade", trail[1].Title)
	assert.Equal(t, "Contract Variations", trail[2].Title)

	assert.Equal(t, "VO-003", trail[3].Title)
	assert.Nil(t, trail[3].URL, "current page must not link")
}

func TestURLHelpers(t *testing.T) {
	assert.Equal(t, "/projects/p1", ProjectURL("p1"))
	assert.Equal(t, "/projects/p1/ledgers", ModuleURL("p1", "ledgers"))
}
