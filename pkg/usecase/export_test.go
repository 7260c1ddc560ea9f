package usecase

import (
	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/slack-go/slack"
)

func FormatDigest(pollID types.PollID, pending []*model.Member) string {
	return formatDigest(pollID, pending)
}

func BuildPollCardBlocks(pollID types.PollID) []slack.Block {
	return buildPollCardBlocks(pollID)
}
