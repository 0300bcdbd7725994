package service

import (
	"time"

	"challonge-client/challonge"
	"challonge-client/internal/domain"
)

func timePtr(n challonge.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

func toSnapshot(d *challonge.TournamentDetail, syncedAt time.Time) *domain.Snapshot {
	t := d.Tournament
	snap := &domain.Snapshot{
		Tournament: domain.Tournament{
			ID:                t.ID,
			URL:               t.URL,
			Subdomain:         t.Subdomain,
			Name:              t.Name,
			TournamentType:    t.TournamentType.Token(),
			State:             t.State.Token(),
			GameName:          t.GameName,
			ParticipantsCount: t.ParticipantsCount,
			StartedAt:         timePtr(t.StartedAt),
			CompletedAt:       timePtr(t.CompletedAt),
			UpdatedAt:         timePtr(t.UpdatedAt),
			SyncedAt:          syncedAt,
		},
		Participants: make([]domain.Participant, len(d.Participants)),
		Matches:      make([]domain.Match, len(d.Matches)),
	}

	for i, p := range d.Participants {
		snap.Participants[i] = domain.Participant{
			ID:           p.ID,
			TournamentID: t.ID,
			Name:         p.Label(),
			Seed:         p.Seed,
			Active:       p.Active,
			CheckedIn:    p.CheckedIn,
			FinalRank:    p.FinalRank,
			Misc:         p.Misc,
		}
	}
	for i, m := range d.Matches {
		snap.Matches[i] = domain.Match{
			ID:           m.ID,
			TournamentID: t.ID,
			Identifier:   m.Identifier,
			Round:        m.Round,
			State:        m.State.Token(),
			Player1ID:    m.Player1ID,
			Player2ID:    m.Player2ID,
			WinnerID:     m.WinnerID,
			LoserID:      m.LoserID,
			ScoresCSV:    m.ScoresCSV,
			UnderwayAt:   timePtr(m.UnderwayAt),
			UpdatedAt:    timePtr(m.UpdatedAt),
		}
	}
	return snap
}
