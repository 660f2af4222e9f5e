package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLinkIsUsable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		isActive  bool
		expiresAt time.Time
		want      bool
	}{
		{"active and unexpired", true, now.Add(time.Hour), true},
		{"active at the expiry instant", true, now, true},
		{"active but expired", true, now.Add(-time.Second), false},
		{"revoked before expiry", false, now.Add(time.Hour), false},
		{"revoked and expired", false, now.Add(-time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := &PublicApprovalLink{IsActive: tt.isActive, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, link.IsUsable(now))
		})
	}
}
