package model

import "github.com/markclong/slack-archiver/pkg/domain/types"

// SyncState records the contiguous archived interval for one channel.
// OldestTS and NewestTS are the bounds of everything captured so far; the
// next run fetches only messages strictly newer than NewestTS.
type SyncState struct {
	Channel   string // Channel name, the primary key
	OldestTS  types.MessageTS
	NewestTS  types.MessageTS
	ChannelID types.ChannelID // Resolved conversation ID, kept across runs
}

// MergeSyncState widens the stored interval with the bounds observed by a
// completed walk and returns the state to store. prior may be nil when the
// channel has never been archived. The channel ID from the current run
// always wins when set.
func MergeSyncState(prior *SyncState, channel string, first, last types.MessageTS, channelID types.ChannelID) *SyncState {
	next := &SyncState{
		Channel:   channel,
		OldestTS:  first,
		NewestTS:  last,
		ChannelID: channelID,
	}
	if prior == nil {
		return next
	}
	if !prior.OldestTS.IsZero() && prior.OldestTS.Before(first) {
		next.OldestTS = prior.OldestTS
	}
	if !prior.NewestTS.IsZero() && prior.NewestTS.After(last) {
		next.NewestTS = prior.NewestTS
	}
	return next
}
