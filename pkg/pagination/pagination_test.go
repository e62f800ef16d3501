// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/fleetadmin/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 20}},
		{"?page=3&limit=50", pagination.Params{Page: 3, Limit: 50}},
		{"?page=-1&limit=0", pagination.Params{Page: 1, Limit: 20}},
		{"?limit=1000", pagination.Params{Page: 1, Limit: 100}},
		{"?page=abc", pagination.Params{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		request := httptest.NewRequest("GET", "/users"+tt.query, nil)
		assert.Equal(t, tt.want, pagination.FromRequest(request), tt.query)
	}
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 1, Limit: 20}, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)

	meta = pagination.NewMeta(pagination.Params{Page: 3, Limit: 20}, 41)
	assert.False(t, meta.HasNext)

	meta = pagination.NewMeta(pagination.Params{Page: 1, Limit: 20}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)

	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
}
