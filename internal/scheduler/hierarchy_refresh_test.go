package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
	linkingmocks "github.com/vfg2006/adlink-api/internal/usecases/linking/mocks"
	"go.uber.org/mock/gomock"
)

func newRefreshService(t *testing.T, enabled bool, cron string) (*HierarchyRefreshService, *linkingmocks.MockLinkingService) {
	ctrl := gomock.NewController(t)
	refresher := linkingmocks.NewMockLinkingService(ctrl)

	cfg := &config.Config{}
	cfg.HierarchyRefresh.Enabled = enabled
	cfg.HierarchyRefresh.CronSchedule = cron

	return NewHierarchyRefreshService(refresher, cfg), refresher
}

func TestHierarchyRefreshService_refreshAll(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(refresher *linkingmocks.MockLinkingService)
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name: "Rodada completa guarda o resumo",
			setup: func(refresher *linkingmocks.MockLinkingService) {
				refresher.EXPECT().RefreshAll(gomock.Any()).
					Return(&linking.RefreshSummary{Sessions: 3, Refreshed: 2, Skipped: 1}, nil)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, &linking.RefreshSummary{Sessions: 3, Refreshed: 2, Skipped: 1}, status["last_summary"])
				assert.Empty(t, status["last_error"])
				assert.False(t, status["running"].(bool))
			},
		},
		{
			name: "Rodada interrompida registra o erro",
			setup: func(refresher *linkingmocks.MockLinkingService) {
				refresher.EXPECT().RefreshAll(gomock.Any()).
					Return(&linking.RefreshSummary{Sessions: 3, Refreshed: 1}, context.DeadlineExceeded)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, context.DeadlineExceeded.Error(), status["last_error"])
				assert.NotZero(t, status["last_sync_completed_at"])
			},
		},
		{
			name: "Contexto da rodada tem prazo",
			setup: func(refresher *linkingmocks.MockLinkingService) {
				refresher.EXPECT().RefreshAll(gomock.Any()).
					DoAndReturn(func(ctx context.Context) (*linking.RefreshSummary, error) {
						_, ok := ctx.Deadline()
						if !ok {
							return nil, errors.New("sem prazo")
						}
						return &linking.RefreshSummary{}, nil
					})
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Empty(t, status["last_error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, refresher := newRefreshService(t, true, "0 */6 * * *")
			tt.setup(refresher)

			service.refreshAll(context.Background())
			tt.validate(t, service.GetStatus())
		})
	}
}

func TestHierarchyRefreshService_overlappingRuns(t *testing.T) {
	service, refresher := newRefreshService(t, true, "0 */6 * * *")

	started := make(chan struct{})
	release := make(chan struct{})
	refresher.EXPECT().RefreshAll(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*linking.RefreshSummary, error) {
			close(started)
			<-release
			return &linking.RefreshSummary{Sessions: 1, Refreshed: 1}, nil
		}).Times(1)

	require.True(t, service.TriggerManualSync(context.Background()))
	<-started

	// A segunda chamada não chega ao fluxo de vinculação
	assert.False(t, service.TriggerManualSync(context.Background()))
	service.refreshAll(context.Background())
	assert.True(t, service.GetStatus()["running"].(bool))

	close(release)
	assert.Eventually(t, func() bool {
		return !service.GetStatus()["running"].(bool)
	}, time.Second, 10*time.Millisecond)
}

func TestHierarchyRefreshService_Start(t *testing.T) {
	t.Run("Desabilitado não agenda", func(t *testing.T) {
		service, _ := newRefreshService(t, false, "0 */6 * * *")
		require.NoError(t, service.Start(context.Background()))
		assert.Empty(t, service.scheduler.Jobs())
	})

	t.Run("Expressão cron inválida", func(t *testing.T) {
		service, _ := newRefreshService(t, true, "a cada hora")
		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("Agenda e para com o contexto", func(t *testing.T) {
		service, _ := newRefreshService(t, true, "0 */6 * * *")
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, service.Start(ctx))
		assert.Len(t, service.scheduler.Jobs(), 1)
		assert.True(t, service.scheduler.IsRunning())

		cancel()
		assert.Eventually(t, func() bool {
			return !service.scheduler.IsRunning()
		}, time.Second, 10*time.Millisecond)
	})
}
