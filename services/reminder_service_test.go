package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Olzhas-T/contest-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderServiceGroupsByCoach(t *testing.T) {
	f := newFixture()
	f.competitions[1] = &models.Competition{ID: 1, TeamCapacity: 3}
	f.competitions[2] = &models.Competition{ID: 2, TeamCapacity: 3}

	name := "Pending"
	siteID := 2
	f.addTeam(&models.Team{ID: 1, CompetitionID: 1, CoachID: 10, PendingName: &name})
	f.addTeam(&models.Team{ID: 2, CompetitionID: 1, CoachID: 10, PendingSiteID: &siteID})
	f.addTeam(&models.Team{ID: 3, CompetitionID: 1, CoachID: 11, PendingName: &name})
	f.addTeam(&models.Team{ID: 4, CompetitionID: 1, CoachID: 12}) // без заявок

	sink := &fakeSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewReminderService(&fakeCompetitionRepo{f}, &fakeTeamRepo{f}, sink, logger)

	err := svc.RunOnce(context.Background())
	require.NoError(t, err)

	// Одно напоминание на тренера, команды сгруппированы.
	require.Len(t, sink.reminders, 2)
	byCoach := make(map[int][]int)
	for _, note := range sink.reminders {
		assert.Equal(t, 1, note.CompetitionID)
		byCoach[note.CoachID] = note.TeamIDs
	}
	assert.ElementsMatch(t, []int{1, 2}, byCoach[10])
	assert.ElementsMatch(t, []int{3}, byCoach[11])
	_, ok := byCoach[12]
	assert.False(t, ok, "тренер без заявок напоминаний не получает")
}

func TestReminderServiceQuietWhenNothingPending(t *testing.T) {
	f := newFixture()
	f.competitions[1] = &models.Competition{ID: 1, TeamCapacity: 3}
	f.addTeam(&models.Team{ID: 1, CompetitionID: 1, CoachID: 10})

	sink := &fakeSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewReminderService(&fakeCompetitionRepo{f}, &fakeTeamRepo{f}, sink, logger)

	require.NoError(t, svc.RunOnce(context.Background()))
	assert.Empty(t, sink.reminders)
}
