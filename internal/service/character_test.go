package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/model/types"
)

func TestNewCharacter(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		level := 275
		character := newCharacter(42, &types.CreateCharacterRequest{
			Name:      "Scania",
			World:     "Bera",
			Level:     &level,
			Job:       "Hero",
			IconURL:   "https://example.com/icon.png",
			IsMain:    true,
			SortOrder: 3,
		})

		assert.Equal(t, 42, character.AccountID)
		assert.Equal(t, "Scania", character.Name)
		assert.Equal(t, "Bera", character.World)
		require.True(t, character.Level.Valid)
		assert.EqualValues(t, 275, character.Level.Int64)
		assert.Equal(t, null.StringFrom("Hero"), character.Job)
		assert.Equal(t, null.StringFrom("https://example.com/icon.png"), character.IconURL)
		assert.True(t, character.IsMain)
		assert.Equal(t, 3, character.SortOrder)
	})

	t.Run("optional fields omitted", func(t *testing.T) {
		character := newCharacter(42, &types.CreateCharacterRequest{
			Name:  "Scania",
			World: "Bera",
		})

		assert.False(t, character.Level.Valid)
		assert.Equal(t, "", character.Job.String)
		assert.Equal(t, "", character.IconURL.String)
	})
}

func TestApplyCharacterUpdate(t *testing.T) {
	base := func() *model.Character {
		return &model.Character{
			AccountID: 42,
			Name:      "Scania",
			World:     "Bera",
			Level:     null.IntFrom(270),
			Job:       null.StringFrom("Hero"),
			IsMain:    false,
			SortOrder: 1,
		}
	}

	t.Run("empty request leaves the character untouched", func(t *testing.T) {
		character := base()
		applyCharacterUpdate(character, &types.UpdateCharacterRequest{})
		assert.Equal(t, base(), character)
	})

	t.Run("set fields overwrite", func(t *testing.T) {
		character := base()
		name := "Luna"
		level := 280
		job := "Bishop"
		icon := "https://example.com/new.png"
		isMain := true
		applyCharacterUpdate(character, &types.UpdateCharacterRequest{
			Name:    &name,
			Level:   &level,
			Job:     &job,
			IconURL: &icon,
			IsMain:  &isMain,
		})

		assert.Equal(t, "Luna", character.Name)
		assert.Equal(t, "Bera", character.World)
		assert.Equal(t, null.IntFrom(280), character.Level)
		assert.Equal(t, null.StringFrom("Bishop"), character.Job)
		assert.Equal(t, null.StringFrom("https://example.com/new.png"), character.IconURL)
		assert.True(t, character.IsMain)
	})
}
