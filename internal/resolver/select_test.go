package resolver

import (
	"testing"

	"github.com/steviee/cfdl/internal/cursetools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFile(t *testing.T) {
	files := []cursetools.ModFile{
		{FileName: "a.jar", DownloadURL: "", GameVersions: []string{"1.19"}},
		{FileName: "f.jar", DownloadURL: "http://x/f.jar", GameVersions: []string{"1.20"}},
		{FileName: "g.jar", DownloadURL: "http://x/g.jar", GameVersions: []string{"1.20", "1.20.1"}},
		{FileName: "h.jar", DownloadURL: "http://x/h.jar", GameVersions: []string{"1.19"}},
	}

	tests := []struct {
		name     string
		version  string
		wantFile string
		wantErr  error
	}{
		{name: "first match wins", version: "1.20", wantFile: "f.jar"},
		{name: "later exclusive match", version: "1.20.1", wantFile: "g.jar"},
		{name: "first match lacks URL", version: "1.19", wantErr: ErrNoDownloadURL},
		{name: "no match", version: "1.18", wantErr: ErrNoMatchingFile},
		{name: "prefix is not a match", version: "1.2", wantErr: ErrNoMatchingFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectFile(files, tt.version)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, got.FileName)
		})
	}
}

func TestSelectFile_Empty(t *testing.T) {
	_, err := SelectFile(nil, "1.20")
	assert.ErrorIs(t, err, ErrNoMatchingFile)
}
