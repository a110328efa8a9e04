package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	names := []string{"Club Natación Ñuñoa", "Delfines de Valparaíso", "Tiburones Concepción"}
	id := func(s string) string { return s }

	tests := []struct {
		query string
		want  []string
	}{
		{"", names},
		{"   ", names},
		{"nunoa", []string{"Club Natación Ñuñoa"}},
		{"VALPO", []string{"Delfines de Valparaíso"}},
		{"cion", []string{"Club Natación Ñuñoa", "Tiburones Concepción"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(names, tt.query, id))
		})
	}
}
