package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdEligibleAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		ad   Ad
		want bool
	}{
		{"active no window", Ad{IsActive: true}, true},
		{"inactive", Ad{IsActive: false}, false},
		{"inside window", Ad{IsActive: true, StartsAt: &past, EndsAt: &future}, true},
		{"not started", Ad{IsActive: true, StartsAt: &future}, false},
		{"already ended", Ad{IsActive: true, EndsAt: &past}, false},
		{"open-ended start", Ad{IsActive: true, StartsAt: &past}, true},
		{"open-ended end", Ad{IsActive: true, EndsAt: &future}, true},
		{"inactive inside window", Ad{IsActive: false, StartsAt: &past, EndsAt: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ad.EligibleAt(now))
		})
	}
}
