package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingCost(t *testing.T) {
	cases := []struct {
		district string
		want     int64
	}{
		{"Dhaka", testShipping.DiscountedRate},
		{"Chattogram", testShipping.StandardRate},
		{"Sylhet", testShipping.StandardRate},
		{"dhaka", testShipping.StandardRate}, // district names are exact
	}
	for _, tc := range cases {
		t.Run(tc.district, func(t *testing.T) {
			assert.Equal(t, tc.want, ShippingCost(testShipping, tc.district))
		})
	}
}
