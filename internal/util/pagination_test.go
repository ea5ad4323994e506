package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/letteringshop/storefront/internal/util"
)

func TestCalculate(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		from       int
		limit      int
	}{
		{"defaults", 0, 0, 0, 10},
		{"first page", 1, 20, 0, 20},
		{"third page", 3, 20, 40, 20},
		{"oversized clamped", 1, 500, 0, 10},
		{"negative page", -2, 5, 0, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			from, limit := util.Calculate(tc.page, tc.size)
			assert.Equal(t, tc.from, from)
			assert.Equal(t, tc.limit, limit)
		})
	}
}
