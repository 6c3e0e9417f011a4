package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical mod URL", input: "https://www.curseforge.com/minecraft/mc-mods/jei", want: "jei"},
		{name: "surrounding whitespace", input: "  https://www.curseforge.com/minecraft/mc-mods/jei \n", want: "jei"},
		{name: "trailing path", input: "https://www.curseforge.com/minecraft/mc-mods/jei/files/all", want: "jei"},
		{name: "query string", input: "https://www.curseforge.com/minecraft/mc-mods/sodium?page=2", want: "sodium"},
		{name: "fragment", input: "https://www.curseforge.com/minecraft/mc-mods/create#description", want: "create"},
		{name: "other category", input: "https://www.curseforge.com/minecraft/texture-packs/faithful-32x", want: "faithful-32x"},
		{name: "no scheme", input: "curseforge.com/minecraft/mc-mods/jei", want: "jei"},
		{name: "missing slug", input: "https://www.curseforge.com/minecraft/mc-mods/", wantErr: true},
		{name: "other game", input: "https://www.curseforge.com/wow/addons/details", wantErr: true},
		{name: "other site", input: "https://modrinth.com/mod/sodium", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractSlug(tt.input)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidURL)
				assert.Empty(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
