package meta

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vfg2006/adlink-api/internal/domain"
)

var metaFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "adlink_meta_requests_total",
	Help: "Total de requisições à Graph API por operação e resultado",
}, []string{"op", "result"})

func observeFetch(op string, err error) {
	metaFetchTotal.WithLabelValues(op, fetchResult(err)).Inc()
}

func fetchResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsAuthError(err):
		return "auth_error"
	case domain.IsTransportError(err):
		return "transport_error"
	default:
		return "remote_error"
	}
}
