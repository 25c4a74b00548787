package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
)

// runTimeout limita uma execução completa, agendada ou manual
const runTimeout = 30 * time.Minute

var refreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "adlink_hierarchy_refresh_runs_total",
	Help: "Execuções da atualização agendada de hierarquias por resultado.",
}, []string{"result"})

// HierarchyRefresher é a parte do fluxo de vinculação usada pelo agendador
type HierarchyRefresher interface {
	RefreshAll(ctx context.Context) (*linking.RefreshSummary, error)
}

// HierarchyRefreshConfig representa a configuração do agendador de hierarquias
type HierarchyRefreshConfig struct {
	CronSchedule string
	Enabled      bool
}

// HierarchyRefreshService renova credenciais perto de expirar e atualiza a
// hierarquia de todas as sessões carregadas
type HierarchyRefreshService struct {
	scheduler *gocron.Scheduler
	config    HierarchyRefreshConfig
	refresher HierarchyRefresher

	mu                  sync.Mutex
	running             bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *linking.RefreshSummary
	lastError           string
}

func NewHierarchyRefreshService(refresher HierarchyRefresher, appConfig *config.Config) *HierarchyRefreshService {
	refreshConfig := HierarchyRefreshConfig{
		CronSchedule: appConfig.HierarchyRefresh.CronSchedule,
		Enabled:      appConfig.HierarchyRefresh.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"enabled":       refreshConfig.Enabled,
	}).Info("Configuração do agendador de hierarquias carregada")

	return &HierarchyRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		refresher: refresher,
	}
}

// Start agenda a atualização e para o agendador quando ctx é cancelado
func (s *HierarchyRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Atualização agendada de hierarquias desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de hierarquias")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização de hierarquias: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de hierarquias")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshAll executa uma rodada; rodadas sobrepostas são ignoradas
func (s *HierarchyRefreshService) refreshAll(parent context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Atualização de hierarquias já em andamento, ignorando")
		refreshRuns.WithLabelValues("skipped").Inc()
		return
	}
	s.running = true
	s.lastSyncStartedAt = time.Now()
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(parent, runTimeout)
	defer cancel()

	summary, err := s.refresher.RefreshAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSummary = summary
	s.lastError = ""

	if err != nil {
		s.lastError = err.Error()
		refreshRuns.WithLabelValues("error").Inc()
		logrus.WithError(err).Error("Atualização agendada de hierarquias interrompida")
		return
	}

	refreshRuns.WithLabelValues("success").Inc()
}

// TriggerManualSync inicia uma rodada em segundo plano. Devolve false se já houver uma em andamento.
func (s *HierarchyRefreshService) TriggerManualSync(ctx context.Context) bool {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	if running {
		logrus.Info("Atualização de hierarquias já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando atualização manual de hierarquias")
	go s.refreshAll(context.WithoutCancel(ctx))
	return true
}

// GetStatus retorna o status atual do agendador
func (s *HierarchyRefreshService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":                s.config.Enabled,
		"cron":                   s.config.CronSchedule,
		"running":                s.running,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
		"last_error":             s.lastError,
	}
}
