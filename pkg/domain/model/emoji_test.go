package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/markclong/slack-archiver/pkg/domain/model"
)

func TestEmoji_Alias(t *testing.T) {
	t.Parallel()

	alias := model.Emoji{Name: "partyparrot", URL: "alias:party_parrot"}
	gt.Value(t, alias.IsAlias()).Equal(true)
	gt.Value(t, alias.AliasTarget()).Equal("party_parrot")

	plain := model.Emoji{Name: "shipit", URL: "https://emoji.example.com/shipit.png"}
	gt.Value(t, plain.IsAlias()).Equal(false)
	gt.Value(t, plain.AliasTarget()).Equal("")
}
