package recording

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAgentAndExtension(t *testing.T) {
	tests := []struct {
		name          string
		filename      string
		matchedNumber string
		wantAgent     string
		wantExtension string
	}{
		{
			name:          "standard convention",
			filename:      "022606358444-8007-16-10-2025-13-49-28.gsm",
			matchedNumber: "606358444",
			wantAgent:     "8007",
			wantExtension: "022",
		},
		{
			name:          "number starts the filename",
			filename:      "606358444-8007-16-10-2025-13-49-28.gsm",
			matchedNumber: "606358444",
			wantAgent:     "8007",
			wantExtension: "",
		},
		{
			name:          "no convention match keeps the entry usable",
			filename:      "random-recording.gsm",
			matchedNumber: "606358444",
			wantAgent:     "",
			wantExtension: "",
		},
		{
			name:          "number absent from filename",
			filename:      "022999999999-8011-01-02-2025-09-00-00.gsm",
			matchedNumber: "606358444",
			wantAgent:     "8011",
			wantExtension: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, extension := ParseAgentAndExtension(tt.filename, tt.matchedNumber)
			assert.Equal(t, tt.wantAgent, agent)
			assert.Equal(t, tt.wantExtension, extension)
		})
	}
}

func TestAgentCodesEqual(t *testing.T) {
	assert.True(t, AgentCodesEqual("8011", "8011"))
	assert.True(t, AgentCodesEqual("011", "8011"))
	assert.True(t, AgentCodesEqual("8011", "011"))
	assert.False(t, AgentCodesEqual("8011", "8012"))
	assert.False(t, AgentCodesEqual("", "8011"))
	assert.False(t, AgentCodesEqual("8011", ""))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "200.00 KB", FormatSize(200*1024))
	assert.Equal(t, "1.50 MB", FormatSize(1536*1024))
}

func TestEstimateDuration(t *testing.T) {
	// 200 KiB at 1625 B/s is roughly 126 seconds.
	assert.Equal(t, "2:06", EstimateDuration(200*1024))
	assert.Equal(t, "0:00", EstimateDuration(0))
	assert.Equal(t, "1:00", EstimateDuration(60*1625))
}
