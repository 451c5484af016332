package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClauseWhitelist(t *testing.T) {
	allowed := map[string]string{"createdAt": "created_at", "priority": "priority"}

	assert.Equal(t, "created_at DESC", NewBaseFilter(1, 10, "createdAt", "desc").OrderClause(allowed, "id"))
	assert.Equal(t, "priority ASC", NewBaseFilter(1, 10, "priority", "asc").OrderClause(allowed, "id"))
	assert.Equal(t, "created_at DESC", NewBaseFilter(1, 10, "1; DROP TABLE x", "asc").OrderClause(allowed, "created_at DESC"))
}

func TestPageFilter(t *testing.T) {
	assert.Equal(t, 0, PageFilter{Page: 0, PageSize: 10}.Offset())
	assert.Equal(t, 20, PageFilter{Page: 3, PageSize: 10}.Offset())
	assert.Equal(t, 100, PageFilter{PageSize: 500}.Limit())
	assert.Equal(t, 10, PageFilter{}.Limit())
}
