package linking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vfg2006/adlink-api/internal/domain"
)

var linkedAccountSaves = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "adlink_linked_account_saves_total",
	Help: "Total de salvamentos de contas vinculadas por resultado",
}, []string{"result"})

func observeSave(err error) {
	result := "ok"
	switch {
	case err == nil:
	case domain.IsValidationError(err):
		result = "validation_error"
	default:
		result = "error"
	}
	linkedAccountSaves.WithLabelValues(result).Inc()
}
