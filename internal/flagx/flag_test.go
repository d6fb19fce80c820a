package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value kept",
			args:    []string{"-c", "conf.json", "-x", "other"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form kept",
			args:    []string{"--config=conf.json", "-b=http://x"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag followed by another flag keeps only the flag",
			args:    []string{"-v", "-c", "conf.json"},
			allowed: []string{"-v"},
			want:    []string{"-v"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1", "-b", "2"},
			allowed: []string{"-z"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestRemoveArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		removed []string
		want    []string
	}{
		{
			name:    "flag and value dropped",
			args:    []string{"-b", "http://x", "search", "-server", "154"},
			removed: []string{"-b"},
			want:    []string{"search", "-server", "154"},
		},
		{
			name:    "equals form dropped",
			args:    []string{"--config=conf.json", "browse"},
			removed: []string{"--config"},
			want:    []string{"browse"},
		},
		{
			name:    "unrelated args untouched",
			args:    []string{"fetch", "-files", "a.gsm,b.gsm"},
			removed: []string{"-b", "-s"},
			want:    []string{"fetch", "-files", "a.gsm,b.gsm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveArgs(tt.args, tt.removed))
		})
	}
}
