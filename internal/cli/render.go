package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/selection"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
)

func renderSnapshot(snapshot *linking.Snapshot, s styles) string {
	lines := []string{
		s.title.Render("Contas de anúncio"),
		s.header.Render(fmt.Sprintf("status: %s · selecionadas: %d", snapshot.Status, snapshot.SelectedCount)),
	}

	if snapshot.Identity != nil {
		lines = append(lines, s.header.Render(fmt.Sprintf("conectado como: %s", identityLabel(snapshot.Identity))))
	}

	if snapshot.LastError != "" {
		lines = append(lines, s.warning.Render("erro: "+snapshot.LastError))
	}

	if len(snapshot.Businesses) == 0 {
		lines = append(lines, s.empty.Render("Nenhuma empresa carregada."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, business := range snapshot.Businesses {
		lines = append(lines, s.section.Render(renderBusiness(business, s)))
	}

	if len(snapshot.Warnings) > 0 {
		warnings := []string{s.warning.Render("avisos:")}
		for _, w := range snapshot.Warnings {
			warnings = append(warnings, s.warning.Render(fmt.Sprintf("  %s: %s", w.BusinessID, w.Message)))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, warnings...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBusiness(business selection.BusinessView, s styles) string {
	mark := checkbox(business.Selected, business.Partial, s)
	parts := []string{
		mark + " " + s.business.Render(fmt.Sprintf("%s (%s)", business.Name, business.ID)),
	}

	if len(business.Accounts) == 0 {
		parts = append(parts, "    "+s.empty.Render("sem contas"))
	}

	for _, account := range business.Accounts {
		parts = append(parts, "    "+checkbox(account.Selected, false, s)+" "+s.account.Render(fmt.Sprintf("%s (%s)", account.Name, account.ID)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func checkbox(selected, partial bool, s styles) string {
	switch {
	case selected:
		return s.selected.Render("[x]")
	case partial:
		return s.partial.Render("[~]")
	default:
		return "[ ]"
	}
}

func identityLabel(identity *domain.Identity) string {
	if identity.Email != "" {
		return fmt.Sprintf("%s <%s>", identity.Name, identity.Email)
	}
	return identity.Name
}

func renderLinked(records []domain.LinkedAccountRecord, s styles) string {
	lines := []string{
		s.title.Render("Contas vinculadas"),
		s.header.Render(fmt.Sprintf("registros: %d", len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("Nenhuma conta vinculada."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		parts := []string{s.business.Render(fmt.Sprintf("%s · %d contas", record.ID, record.AccountCount()))}
		for _, business := range record.MetaBusinesses {
			names := make([]string, 0, len(business.Accounts))
			for _, account := range business.Accounts {
				names = append(names, account.MetaAdAccountName)
			}
			parts = append(parts, s.account.Render(fmt.Sprintf("  %s: %s", business.MetaBusinessName, strings.Join(names, ", "))))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
