package handler

import (
	"net/http"

	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/usecases/reporting"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
	"github.com/vfg2006/adlink-api/pkg/log"
	"github.com/vfg2006/adlink-api/pkg/utils"
)

// GetAdSpend devolve o relatório de investimento; format=csv exporta os lançamentos
func GetAdSpend(service reporting.ReportingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := currentUser(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()

		from, err := utils.ParseDate(query.Get("from"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida. Formato esperado: AAAA-MM-DD", nil)
			return
		}

		to, err := utils.ParseDate(query.Get("to"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida. Formato esperado: AAAA-MM-DD", nil)
			return
		}

		report, err := service.AdSpendReport(r.Context(), userClaims.UserID, domain.AdSpendFilters{From: from, To: to})
		if err != nil {
			handleServiceError(w, r, err, "Erro ao gerar relatório de investimento")
			return
		}

		if query.Get("format") == "csv" {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="ad-spend.csv"`)
			if err := reporting.WriteCSV(w, report.Entries); err != nil {
				log.ForContext(r.Context()).WithError(err).Error("Erro ao exportar CSV")
			}
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
