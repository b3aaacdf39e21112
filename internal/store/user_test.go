package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

func TestDecodeAccess(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.AccessSettings
		wantErr bool
	}{
		{name: "null column", raw: ""},
		{name: "systems and pages", raw: `{"systems":["loan"],"pages":["/app"]}`,
			want: domain.AccessSettings{Systems: []string{"loan"}, Pages: []string{"/app"}}},
		{name: "empty object", raw: `{}`},
		{name: "bare string", raw: `"payment"`, wantErr: true},
		{name: "systems not a list", raw: `{"systems":"loan","pages":["/app"]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeAccess([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, domain.AccessSettings{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
